// Package label formats the text shown on a tab.
package label

import (
	"fmt"
	"os"
	"os/user"
)

// Env is the snapshot taken once when the window opens. It labels tabs
// that have not reported a title of their own.
type Env struct {
	User string
	Host string
	Cwd  string
}

// CaptureEnv reads the current user, host name and working directory.
// Fields that cannot be determined are left empty.
func CaptureEnv() Env {
	var env Env
	if u, err := user.Current(); err == nil {
		env.User = u.Username
	} else if name := os.Getenv("USER"); name != "" {
		env.User = name
	}
	if host, err := os.Hostname(); err == nil {
		env.Host = host
	}
	if cwd, err := os.Getwd(); err == nil {
		env.Cwd = cwd
	}
	return env
}

// FormatDefault returns "{n}. {user}@{host}:{cwd}".
func FormatDefault(n int, env Env) string {
	return fmt.Sprintf("%d. %s@%s:%s", n, env.User, env.Host, env.Cwd)
}

// FormatTitled returns "{n}. {title}".
func FormatTitled(n int, title string) string {
	return fmt.Sprintf("%d. %s", n, title)
}
