package linereader

import (
	"testing"

	"go.uber.org/goleak"
)

// Word loaders and watchers run in the background; none may outlive a test.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
