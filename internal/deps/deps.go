// Package deps checks for the external programs krimiwiki shells out to.
package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrMissing reports a required program that is not installed.
var ErrMissing = errors.New("required program not found")

// Requirement is an external program a command needs.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports whether a requirement is met.
type Status struct {
	Requirement
	Available bool
	// Path is the resolved executable when available.
	Path   string
	Detail string
}

// Check resolves every requirement on PATH.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		status := Status{Requirement: req}
		if req.Command == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(req.Command)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// Require returns an ErrMissing error naming the first unavailable
// requirement that is not optional.
func Require(requirements ...Requirement) error {
	for _, status := range Check(requirements) {
		if status.Available || status.Optional {
			continue
		}
		return fmt.Errorf("%s (%s): %s: %w", status.Name, status.Description, status.Detail, ErrMissing)
	}
	return nil
}

// Fetcher describes the page download utility configured as command.
func Fetcher(command string) Requirement {
	return Requirement{
		Name:        "Downloader",
		Command:     command,
		Description: "downloads broadcaster and fan-site pages",
	}
}
