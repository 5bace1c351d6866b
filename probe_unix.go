//go:build linux || darwin || freebsd || netbsd || openbsd

package linereader

import "golang.org/x/sys/unix"

// HasPendingInput polls the descriptor without waiting. Poll failures are
// reported as "nothing pending".
func (p *fdProbe) HasPendingInput() bool {
	fds := []unix.PollFd{{Fd: int32(p.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil || n <= 0 {
		return false
	}
	return fds[0].Revents&unix.POLLIN != 0
}
