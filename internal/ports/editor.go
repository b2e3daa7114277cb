package ports

import "os/exec"

// EditorOpener opens files, such as a link's notes, in an external editor
type EditorOpener interface {
	// OpenFile opens path and blocks until the editor exits
	OpenFile(path string) error

	// Command returns the editor process without starting it, so a terminal
	// UI can suspend itself while the editor runs
	Command(path string) (*exec.Cmd, error)
}
