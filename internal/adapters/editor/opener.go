package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"contexere/internal/ports"
)

// Opener opens identifier entries (notebooks, notes, directories) in an editor
type Opener struct {
	preferred string
	lookPath  func(string) (string, error)
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener. preferred, when set, wins over
// $VISUAL and $EDITOR.
func NewOpener(preferred string) *Opener {
	return &Opener{preferred: preferred, lookPath: exec.LookPath}
}

// Command returns an exec.Cmd for opening path in the editor, for use with
// bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	// Editors such as "code --wait" carry their own arguments
	fields := strings.Fields(editor)
	args := append(fields[1:], path)

	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

func (o *Opener) findEditor() string {
	for _, candidate := range []string{o.preferred, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := o.lookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
