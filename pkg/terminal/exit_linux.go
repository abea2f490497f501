package terminal

import "golang.org/x/sys/unix"

// awaitExit blocks until pid has exited without reaping it. While the
// zombie exists its pid and process group cannot be reused.
func awaitExit(pid int) {
	var info unix.Siginfo
	for {
		err := unix.Waitid(unix.P_PID, pid, &info, unix.WEXITED|unix.WNOWAIT, nil)
		if err != unix.EINTR {
			return
		}
	}
}
