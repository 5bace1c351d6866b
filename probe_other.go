//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package linereader

// HasPendingInput always reports false where a zero-timeout poll is not
// available. Pasted blocks are then split at delimiters like typed input.
func (p *fdProbe) HasPendingInput() bool {
	return false
}
