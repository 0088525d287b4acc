// Package osutil holds operating system constants shared across hypnos.
package osutil

const (
	Windows = "windows"
	Darwin  = "darwin"
)

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

// Int returns the code for os.Exit.
func (e exitCode) Int() int {
	return int(e)
}

const (
	DirPermission  = 0o755
	FilePermission = 0o644
)
