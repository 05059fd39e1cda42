package process

import (
	"context"
	"log"
	"strings"

	"github.com/shirou/gopsutil/process"
)

// IsProcessRunning implements Manager.
// It supports simple names (e.g. idea) and matches by substring, so "goland"
// finds both "goland" and "GoLand.exe". Errors while inspecting a single
// process are skipped, only a failure to list the process table is returned.
func (m *processManager) IsProcessRunning(ctx context.Context, name string) (bool, error) {
	list, err := process.Processes()
	if err != nil {
		log.Printf("error retrieving process list: %s", err.Error())
		return false, err
	}

	needle := strings.ToLower(name)
	for _, p := range list {
		curName, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(curName), needle) {
			return true, nil
		}
	}
	return false, nil
}

// Run implements Manager
func (m *processManager) Run(name string, arg ...string) ([]byte, error) {
	return runProcess(name, arg...)
}

// FindBinary implements Manager
func (m *processManager) FindBinary(name string, fallbacks ...string) string {
	return findBinary(name, fallbacks)
}

// Home implements Manager
func (m *processManager) Home() (string, error) {
	return homeDir()
}
