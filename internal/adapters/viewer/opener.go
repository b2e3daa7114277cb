package viewer

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Opener implements ports.DocumentViewer using the platform's open command
type Opener struct {
	goos string
}

// NewOpener creates an opener for the running platform
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS}
}

// Open starts the default viewer for path
func (o *Opener) Open(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	// the viewer outlives us; reap it in the background
	go cmd.Wait()
	return nil
}

// Command builds the open command for path without starting it
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	switch o.goos {
	case "darwin":
		return exec.Command("open", abs), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", abs), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", abs), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
