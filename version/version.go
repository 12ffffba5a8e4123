package version

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// VERSION has the current software version (set in the build process)
var VERSION string
var buildTime string
var gitVersion string

func init() {
	if len(gitVersion) > 0 {
		VERSION = VERSION + "/" + gitVersion
	}
	if len(VERSION) == 0 {
		VERSION = "dev-snapshot"
	}
}

// VersionCmd is the kong "version" command
type VersionCmd struct {
	out io.Writer `kong:"-"`
}

func (cmd *VersionCmd) Run() error {
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintf(out, "ticketdraw %s\n", Version())
	return err
}

var v string

func Version() string {
	if len(v) > 0 {
		return v
	}
	extra := []string{}
	if len(buildTime) > 0 {
		extra = append(extra, buildTime)
	}
	extra = append(extra, runtime.Version())
	v = fmt.Sprintf("%s (%s)", VERSION, strings.Join(extra, ", "))
	return v
}

// RegisterMetric adds a build_info gauge for the named program to reg
func RegisterMetric(name string, reg prometheus.Registerer) {
	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name + "_build_info",
			Help: "Build information",
		},
		[]string{"version", "goversion"},
	)
	buildInfo.WithLabelValues(VERSION, runtime.Version()).Set(1)
	reg.MustRegister(buildInfo)
}
