package ports

import "os/exec"

// EditorOpener builds the command that opens an entry in an external editor
type EditorOpener interface {
	// Command returns an exec.Cmd for opening path, for use with bubbletea's
	// ExecProcess
	Command(path string) (*exec.Cmd, error)
}
