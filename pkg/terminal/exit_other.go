//go:build !linux

package terminal

// awaitExit is a no-op where waitid(WNOWAIT) is unavailable; exec.Cmd.Wait
// both waits and reaps.
func awaitExit(int) {}
