package linereader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadinessFunc(t *testing.T) {
	t.Parallel()

	pending := true
	var checker ReadinessChecker = ReadinessFunc(func() bool { return pending })

	assert.True(t, checker.HasPendingInput())
	pending = false
	assert.False(t, checker.HasPendingInput())
	assert.False(t, noPendingInput.HasPendingInput())
}
