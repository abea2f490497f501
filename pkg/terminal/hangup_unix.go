//go:build unix

package terminal

import "golang.org/x/sys/unix"

// hangup sends SIGHUP to the process group led by pid. Processes started
// on a pty are session leaders, so this reaches the shell's jobs too.
func hangup(pid int) error {
	return unix.Kill(-pid, unix.SIGHUP)
}
