// Package wall is the boundary between the wallet core and the desktop.
// The core only produces a rendered artifact on disk; how that artifact is
// turned into an actual wallpaper is the business of an external command
// (plotting tool, compositor, OS setter) configured by the user.
package wall

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/etnz/coinwall"
	"github.com/etnz/coinwall/renderer"
)

// Renderer produces an artifact from a wallet summary and returns its path.
type Renderer interface {
	Render(s *coinwall.Summary) (path string, err error)
}

// Setter applies a rendered artifact as the desktop wallpaper.
type Setter interface {
	Set(path string) error
}

// FileRenderer writes the markdown summary to a fixed path. External tools
// can watch that file and re-composite the wallpaper from it.
type FileRenderer struct {
	Path string
}

func (r *FileRenderer) Render(s *coinwall.Summary) (string, error) {
	if err := os.WriteFile(r.Path, []byte(renderer.SummaryMarkdown(s)), 0644); err != nil {
		return "", fmt.Errorf("cannot write summary to %q: %w", r.Path, err)
	}
	return r.Path, nil
}

// CommandSetter shells out to a user-configured command, with the artifact
// path appended as the last argument. Typical values: "feh --bg-fill" on X11,
// an osascript one-liner on macOS.
type CommandSetter struct {
	Command string
}

func (c *CommandSetter) Set(path string) error {
	if c.Command == "" {
		return nil // no setter configured, the artifact on disk is the product
	}
	cmd := exec.Command("sh", "-c", c.Command+" "+path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wallpaper command failed: %w", err)
	}
	return nil
}
