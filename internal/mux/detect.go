package mux

import (
	"os"
	"os/exec"
)

// Detect resolves the tmux binary named by path ("tmux" when empty) through
// $PATH. A missing binary is reported as ErrLaunchFailed, before any command
// is attempted.
func Detect(path string) (string, error) {
	if path == "" {
		path = "tmux"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", &Error{Kind: KindLaunchFailed, Op: "detect", Target: path, Err: err}
	}
	return resolved, nil
}

// InsideTmux reports whether the current process runs inside a tmux client.
func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}
