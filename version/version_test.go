package version

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := &VersionCmd{out: &buf}
	require.NoError(t, cmd.Run())
	assert.Contains(t, buf.String(), "ticketdraw "+VERSION)
}

func TestRegisterMetric(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterMetric("ticketdraw", reg)

	n, err := testutil.GatherAndCount(reg, "ticketdraw_build_info")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
