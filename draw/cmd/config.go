package cmd

import (
	"errors"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAMLConfig is a kong configuration loader for YAML files. Keys are flag
// names; dashes may be written as underscores. Settings for a single
// command can be nested under the command name:
//
//	delimiter: ";"
//	run:
//	  history: /var/lib/ticketdraw/history.jsonl
func YAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	err := yaml.NewDecoder(r).Decode(&values)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	var f kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		names := []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")}

		if parent != nil && parent.Command != nil {
			if sub, ok := values[parent.Command.Name].(map[string]any); ok {
				for _, name := range names {
					if v, ok := sub[name]; ok {
						return v, nil
					}
				}
			}
		}

		for _, name := range names {
			if v, ok := values[name]; ok {
				return v, nil
			}
		}
		return nil, nil
	}

	return f, nil
}
