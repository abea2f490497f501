package label

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDefault(t *testing.T) {
	tests := []struct {
		name string
		n    int
		env  Env
		want string
	}{
		{"typical", 2, Env{User: "alice", Host: "h", Cwd: "/tmp"}, "2. alice@h:/tmp"},
		{"zero based", 0, Env{User: "bob", Host: "box", Cwd: "/"}, "0. bob@box:/"},
		{"empty snapshot", 1, Env{}, "1. @:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDefault(tt.n, tt.env))
		})
	}
}

func TestFormatTitled(t *testing.T) {
	assert.Equal(t, "1. vim", FormatTitled(1, "vim"))
	assert.Equal(t, "12. ", FormatTitled(12, ""))
	// No truncation happens here; the tab strip elides.
	long := "a very long title that will not fit on any reasonable tab at all"
	assert.Equal(t, "3. "+long, FormatTitled(3, long))
}

func TestCaptureEnv(t *testing.T) {
	env := CaptureEnv()

	wd, err := os.Getwd()
	if assert.NoError(t, err) {
		assert.Equal(t, wd, env.Cwd)
	}
	host, err := os.Hostname()
	if assert.NoError(t, err) {
		assert.Equal(t, host, env.Host)
	}
}
