//go:build linux || darwin || freebsd || netbsd || openbsd

package linereader

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFDProbe(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	probe := newFDProbe(r.Fd())
	assert.False(t, probe.HasPendingInput(), "empty pipe")

	_, err = w.WriteString("SELECT 1;\nSELECT 2;\n")
	require.NoError(t, err)
	assert.True(t, probe.HasPendingInput(), "pipe holds unread bytes")

	buf := make([]byte, 64)
	_, err = r.Read(buf)
	require.NoError(t, err)
	assert.False(t, probe.HasPendingInput(), "pipe drained")
}

func TestFDProbeInvalidDescriptor(t *testing.T) {
	t.Parallel()

	probe := &fdProbe{fd: -1}
	assert.False(t, probe.HasPendingInput())
}
