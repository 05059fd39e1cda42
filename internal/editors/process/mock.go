package process

import (
	"context"
	"fmt"
)

// MockManager is a mock implementation of Manager
type MockManager struct {
	// IsProcessRunningData maps a process name to a running state. A name not handled here is reported as not running.
	IsProcessRunningData func(name string) (bool, error)
	// RunResult returns the mocked output of a subprocess invocation
	RunResult func(name string, arg ...string) ([]byte, error)
	// BinaryLocation resolves a command name, empty means not found
	BinaryLocation func(name string, fallbacks []string) string
	// CustomHome overrides the home directory lookup
	CustomHome func() (string, error)
}

// Run implements Manager
func (m *MockManager) Run(name string, arg ...string) ([]byte, error) {
	if m.RunResult == nil {
		return nil, fmt.Errorf("mock: unable to execute %s", name)
	}
	return m.RunResult(name, arg...)
}

// IsProcessRunning implements Manager
func (m *MockManager) IsProcessRunning(ctx context.Context, name string) (bool, error) {
	if m.IsProcessRunningData == nil {
		return false, nil
	}
	return m.IsProcessRunningData(name)
}

// FindBinary implements Manager
func (m *MockManager) FindBinary(name string, fallbacks ...string) string {
	if m.BinaryLocation == nil {
		return ""
	}
	return m.BinaryLocation(name, fallbacks)
}

// Home implements Manager
func (m *MockManager) Home() (string, error) {
	if m.CustomHome == nil {
		return homeDir()
	}
	return m.CustomHome()
}
