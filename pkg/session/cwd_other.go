//go:build !linux

package session

func processCwd(pid int) (string, error) {
	return "", ErrCwdUnsupported
}
