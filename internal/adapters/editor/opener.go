package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Opener implements ports.EditorOpener
type Opener struct {
	lookup func(string) string
}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookup: os.Getenv}
}

// OpenFile opens a file in the user's preferred editor and waits for it
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor, suitable
// for handing the terminal over with tea.ExecProcess. Editor variables may
// carry arguments, e.g. EDITOR="code --wait".
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := strings.Fields(o.findEditor())
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	for _, name := range []string{"CDRLINK_EDITOR", "VISUAL", "EDITOR"} {
		if editor := o.lookup(name); editor != "" {
			return editor
		}
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
