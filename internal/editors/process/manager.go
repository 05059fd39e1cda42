package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"os/user"
	"strings"

	"github.com/hackclub/hackatime-setup/internal/editors/fs"
)

// Manager handles process information and subprocess invocations for the
// editor plugins. All implementations are safe for sequential use only.
type Manager interface {
	// IsProcessRunning reports if at least one process whose executable name
	// contains name is running. Matching is case-insensitive.
	IsProcessRunning(ctx context.Context, name string) (bool, error)
	// Run executes a command in a subprocess and returns its stdout.
	// A failure is either an ExitError or a SpawnError.
	Run(name string, arg ...string) ([]byte, error)
	// FindBinary resolves a command name: a search path hit wins, otherwise
	// the first existing fallback path is returned, in the given order.
	// The empty string means nothing was found.
	FindBinary(name string, fallbacks ...string) string
	// Home returns the current user's home directory
	Home() (string, error)
}

// NewManager returns a Manager backed by the host's process table
func NewManager() Manager {
	return &processManager{}
}

type processManager struct{}

// ExitError is returned when a process ran but exited with a non-zero status
type ExitError struct {
	cmd    string
	code   int
	stdout string
	stderr string
}

// Error returns the error message intended for users
func (e ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.cmd, e.code)
}

// ExitCode returns the status the process exited with
func (e ExitError) ExitCode() int {
	return e.code
}

// Stdout returns the content which was printed to stdout by the failed process
func (e ExitError) Stdout() string {
	return e.stdout
}

// Stderr returns the content which was printed to stderr by the failed process
func (e ExitError) Stderr() string {
	return e.stderr
}

// SpawnError is returned when a process could not be started at all,
// e.g. because of missing permissions or a corrupted binary
type SpawnError struct {
	cmd string
	err error
}

// Error returns the error message including the underlying OS error
func (e SpawnError) Error() string {
	return fmt.Sprintf("error running %s: %v", e.cmd, e.err)
}

// Unwrap returns the underlying OS error
func (e SpawnError) Unwrap() error {
	return e.err
}

// runProcess executes a command in a subprocess and returns its stdout.
// A non-zero exit is reported as ExitError, a process which never started as
// SpawnError.
func runProcess(name string, arg ...string) ([]byte, error) {
	cmd := exec.Command(name, arg...)
	cmd.SysProcAttr = attributes

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, ExitError{
				cmd:    strings.TrimSpace(name + " " + strings.Join(arg, " ")),
				code:   exitErr.ExitCode(),
				stdout: stdout.String(),
				stderr: stderr.String(),
			}
		}
		return nil, SpawnError{cmd: name, err: err}
	}
	return stdout.Bytes(), nil
}

// findBinary resolves a command. The search path lookup is authoritative and
// short-circuits the fallbacks, the fallback paths only need to exist.
func findBinary(name string, fallbacks []string) string {
	if execPath, err := exec.LookPath(name); err == nil {
		return execPath
	}
	for _, p := range fallbacks {
		if fs.FileExists(p) {
			return p
		}
	}
	return ""
}

// Returns the current user's home directory, or an error if it can't be found.
func homeDir() (string, error) {
	usr, err := user.Current()
	if err != nil {
		return "", err
	}
	return usr.HomeDir, nil
}
