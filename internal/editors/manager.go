// Package editors detects installed code editors and installs the WakaTime
// plugin into each of them.
package editors

import (
	"context"
	"log"

	"github.com/hackclub/hackatime-setup/internal/editors/editor"
	"github.com/hackclub/hackatime-setup/internal/editors/internal/jetbrains"
	"github.com/hackclub/hackatime-setup/internal/editors/internal/vscode"
	"github.com/hackclub/hackatime-setup/internal/editors/internal/zed"
	"github.com/hackclub/hackatime-setup/internal/editors/process"
)

// Manager bundles the plugins of all supported editors
type Manager struct {
	plugins []editor.Plugin
}

// NewManager returns a Manager with every supported editor registered
func NewManager() (*Manager, error) {
	return newManager(process.NewManager())
}

func newManager(proc process.Manager) (*Manager, error) {
	jetbrainsPlugins, err := jetbrains.NewManagers(proc)
	if err != nil {
		return nil, err
	}
	vscodePlugins, err := vscode.NewManagers(proc)
	if err != nil {
		return nil, err
	}
	zedPlugin, err := zed.NewManager(proc)
	if err != nil {
		return nil, err
	}

	var plugins []editor.Plugin
	plugins = append(plugins, jetbrainsPlugins...)
	plugins = append(plugins, vscodePlugins...)
	plugins = append(plugins, zedPlugin)
	return &Manager{plugins: plugins}, nil
}

// Plugins returns all registered plugins
func (m *Manager) Plugins() []editor.Plugin {
	return m.plugins
}

// Detected returns the plugins whose editor is present on this machine
func (m *Manager) Detected(ctx context.Context) []editor.Plugin {
	var detected []editor.Plugin
	for _, p := range m.plugins {
		if p.IsInstalled(ctx) {
			detected = append(detected, p)
		}
	}
	return detected
}

// Filter returns a Manager restricted to the plugins with the given ids.
// Unknown ids are ignored.
func (m *Manager) Filter(ids ...string) *Manager {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}

	var plugins []editor.Plugin
	for _, p := range m.plugins {
		if keep[p.ID()] {
			plugins = append(plugins, p)
		}
	}
	return &Manager{plugins: plugins}
}

// InstallResult is the outcome of one editor's install attempt
type InstallResult struct {
	Plugin editor.Plugin
	Err    error
}

// InstallAll installs the plugin into every detected editor, one at a time.
// A failed install is recorded in its result and never aborts the remaining
// editors.
func (m *Manager) InstallAll(ctx context.Context) []InstallResult {
	var results []InstallResult
	for _, p := range m.Detected(ctx) {
		err := p.Install(ctx)
		if err != nil {
			log.Printf("error installing WakaTime for %s: %s", p.Name(), err.Error())
		}
		results = append(results, InstallResult{Plugin: p, Err: err})
	}
	return results
}
