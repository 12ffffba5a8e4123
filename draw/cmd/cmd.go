package cmd

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/alecthomas/kong"
	"go.opentelemetry.io/otel"

	"go.ntppool.org/ticketdraw/roster"
	"go.ntppool.org/ticketdraw/version"
)

var tracer = otel.Tracer("go.ntppool.org/ticketdraw/draw")

// DrawCmd is the ticketdraw command tree
type DrawCmd struct {
	Config kong.ConfigFlag `help:"Load defaults from a YAML config file"`

	Run     drawCmd            `cmd:"" default:"withargs" help:"Draw participants and update the roster file"`
	Show    showCmd            `cmd:"" help:"Show the roster and each participant's chance of being drawn"`
	Version version.VersionCmd `cmd:"" help:"Print version and build information"`
}

// Options returns the kong options ticketdraw runs with
func Options() []kong.Option {
	return []kong.Option{
		kong.Configuration(YAMLConfig, "~/.config/ticketdraw.yaml", "ticketdraw.yaml"),
		kong.DefaultEnvars("TICKETDRAW"),
	}
}

// RosterFlags are shared by the commands reading a roster file
type RosterFlags struct {
	Delimiter string `default:"|" help:"Character separating name and tickets"`
}

func (f *RosterFlags) Validate() error {
	if utf8.RuneCountInString(f.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", f.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(f.Delimiter)
	if r == '\n' || r == '\r' || (r >= '0' && r <= '9') || r == '-' || r == '+' {
		return fmt.Errorf("delimiter %q would be ambiguous with the record format", f.Delimiter)
	}
	return nil
}

func (f *RosterFlags) delimiter() rune {
	if f.Delimiter == "" {
		return roster.DefaultDelimiter
	}
	r, _ := utf8.DecodeRuneInString(f.Delimiter)
	return r
}

type console struct {
	in  io.Reader
	out io.Writer
}

func (c *console) stdin() io.Reader {
	if c.in == nil {
		return os.Stdin
	}
	return c.in
}

func (c *console) stdout() io.Writer {
	if c.out == nil {
		return os.Stdout
	}
	return c.out
}
