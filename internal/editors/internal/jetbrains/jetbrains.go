package jetbrains

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hackclub/hackatime-setup/internal/editors/editor"
	errs "github.com/hackclub/hackatime-setup/internal/editors/errors"
	"github.com/hackclub/hackatime-setup/internal/editors/process"
	"github.com/pkg/errors"
)

const (
	// https://plugins.jetbrains.com/plugin/7425-wakatime
	pluginID       = "com.wakatime.intellij.plugin"
	installCommand = "installPlugins"
)

// Descriptor is the static configuration of one JetBrains product.
// Descriptors are process-lifetime constants and never mutated.
type Descriptor struct {
	ID   string
	Name string
	// ProductCodes are the prefixes of the product's directories below the
	// JetBrains config root, e.g. "IntelliJIdea2024.1"
	ProductCodes []string
	// CLI is the name of the IDE launcher, also used in Toolbox paths
	CLI string
	// AppNames are the macOS application bundle names, reused as the
	// Windows install folder names
	AppNames []string
}

var descriptors = []Descriptor{
	// IntelliJ Community and Ultimate
	{ID: "intellij", Name: "IntelliJ IDEA", ProductCodes: []string{"IntelliJIdea", "IdeaIC"},
		CLI: "idea", AppNames: []string{"IntelliJ IDEA", "IntelliJ IDEA CE"}},
	// PyCharm Community and Professional
	{ID: "pycharm", Name: "PyCharm", ProductCodes: []string{"PyCharm"},
		CLI: "pycharm", AppNames: []string{"PyCharm", "PyCharm CE"}},
	{ID: "goland", Name: "GoLand", ProductCodes: []string{"GoLand"},
		CLI: "goland", AppNames: []string{"GoLand"}},
	{ID: "webstorm", Name: "WebStorm", ProductCodes: []string{"WebStorm"},
		CLI: "webstorm", AppNames: []string{"WebStorm"}},
	{ID: "phpstorm", Name: "PhpStorm", ProductCodes: []string{"PhpStorm"},
		CLI: "phpstorm", AppNames: []string{"PhpStorm"}},
	{ID: "rider", Name: "Rider", ProductCodes: []string{"Rider"},
		CLI: "rider", AppNames: []string{"Rider"}},
	{ID: "clion", Name: "CLion", ProductCodes: []string{"CLion"},
		CLI: "clion", AppNames: []string{"CLion"}},
	{ID: "rubymine", Name: "RubyMine", ProductCodes: []string{"RubyMine"},
		CLI: "rubymine", AppNames: []string{"RubyMine"}},
	{ID: "datagrip", Name: "DataGrip", ProductCodes: []string{"DataGrip"},
		CLI: "datagrip", AppNames: []string{"DataGrip"}},
	{ID: "rustrover", Name: "RustRover", ProductCodes: []string{"RustRover"},
		CLI: "rustrover", AppNames: []string{"RustRover"}},
	{ID: "android-studio", Name: "Android Studio", ProductCodes: []string{"AndroidStudio"},
		CLI: "studio", AppNames: []string{"Android Studio"}},
}

// NewManagers returns one plugin per supported JetBrains product
func NewManagers(proc process.Manager) ([]editor.Plugin, error) {
	home, err := proc.Home()
	if err != nil {
		return nil, err
	}

	var plugins []editor.Plugin
	for _, d := range descriptors {
		plugins = append(plugins, newManager(d, proc, home, runtime.GOOS, os.Getenv))
	}
	return plugins, nil
}

func newManager(d Descriptor, proc process.Manager, home string, goos string, env func(string) string) *manager {
	return &manager{
		descriptor: d,
		process:    proc,
		userHome:   home,
		goos:       goos,
		env:        env,
	}
}

type manager struct {
	descriptor Descriptor
	process    process.Manager
	userHome   string
	goos       string
	env        func(string) string
}

// ID implements editor.Plugin
func (m *manager) ID() string {
	return m.descriptor.ID
}

// Name implements editor.Plugin
func (m *manager) Name() string {
	return m.descriptor.Name
}

// IsInstalled implements editor.Plugin. A product counts as installed when a
// matching config directory exists or its launcher can be resolved.
func (m *manager) IsInstalled(ctx context.Context) bool {
	return len(m.configDirs()) > 0 || m.findCLI() != ""
}

// Install implements editor.Plugin
func (m *manager) Install(ctx context.Context) error {
	// advisory only, a running IDE may overwrite the plugin list on exit
	if running, err := m.process.IsProcessRunning(ctx, m.descriptor.CLI); err == nil && running {
		log.Printf("warning: %s appears to be running, close it for the plugin to install correctly", m.descriptor.Name)
	}

	cli := m.findCLI()
	if cli == "" {
		return errs.NewNotFound(m.descriptor.Name)
	}

	if _, err := m.process.Run(cli, installCommand, pluginID); err != nil {
		return errors.Wrapf(err, "failed to install WakaTime plugin for %s", m.descriptor.Name)
	}
	return nil
}

// configDirs returns the per-product directories below the JetBrains config
// root whose names match one of the product codes
func (m *manager) configDirs() []string {
	base := m.configRoot()
	if base == "" {
		return nil
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		for _, code := range m.descriptor.ProductCodes {
			if strings.HasPrefix(entry.Name(), code) {
				dirs = append(dirs, filepath.Join(base, entry.Name()))
				break
			}
		}
	}
	return dirs
}

func (m *manager) findCLI() string {
	return m.process.FindBinary(m.descriptor.CLI, m.cliFallbackPaths()...)
}
