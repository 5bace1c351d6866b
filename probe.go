package linereader

// ReadinessChecker reports whether input is already queued and can be read
// without blocking. It is used to keep a pasted block of several lines
// together as one command.
//
// Implementations must return immediately and report false when they cannot
// tell.
type ReadinessChecker interface {
	HasPendingInput() bool
}

// ReadinessFunc adapts a plain function to ReadinessChecker.
type ReadinessFunc func() bool

// HasPendingInput calls f.
func (f ReadinessFunc) HasPendingInput() bool {
	return f()
}

// noPendingInput never reports queued input.
var noPendingInput = ReadinessFunc(func() bool { return false })

// fdProbe checks a file descriptor with a zero timeout.
type fdProbe struct {
	fd int
}

func newFDProbe(fd uintptr) *fdProbe {
	return &fdProbe{fd: int(fd)}
}
