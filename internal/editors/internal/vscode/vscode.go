package vscode

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hackclub/hackatime-setup/internal/editors/editor"
	errs "github.com/hackclub/hackatime-setup/internal/editors/errors"
	"github.com/hackclub/hackatime-setup/internal/editors/fs"
	"github.com/hackclub/hackatime-setup/internal/editors/process"
	"github.com/pkg/errors"
)

const (
	// https://marketplace.visualstudio.com/items?itemName=WakaTime.vscode-wakatime
	extensionID         = "WakaTime.vscode-wakatime"
	installExtensionArg = "--install-extension"
)

// Descriptor is the static configuration of one VS Code derivative.
// Descriptors are process-lifetime constants and never mutated.
type Descriptor struct {
	ID   string
	Name string
	// ConfigDir is the dot directory below the user home which holds the
	// extensions directory, e.g. ".vscode"
	ConfigDir string
	// CLI is the name of the editor's command line shim
	CLI string
	// MacAppName is the macOS application bundle name
	MacAppName string
	// WindowsFolder is the install folder name below Program Files or
	// LocalAppData\Programs
	WindowsFolder string
}

var descriptors = []Descriptor{
	{ID: "vscode", Name: "Visual Studio Code", ConfigDir: ".vscode",
		CLI: "code", MacAppName: "Visual Studio Code", WindowsFolder: "Microsoft VS Code"},
	{ID: "vscode-insiders", Name: "VS Code Insiders", ConfigDir: ".vscode-insiders",
		CLI: "code-insiders", MacAppName: "Visual Studio Code - Insiders", WindowsFolder: "Microsoft VS Code Insiders"},
	{ID: "vscodium", Name: "VSCodium", ConfigDir: ".vscode-oss",
		CLI: "codium", MacAppName: "VSCodium", WindowsFolder: "VSCodium"},
	{ID: "cursor", Name: "Cursor", ConfigDir: ".cursor",
		CLI: "cursor", MacAppName: "Cursor", WindowsFolder: "cursor"},
	{ID: "windsurf", Name: "Windsurf", ConfigDir: ".windsurf",
		CLI: "windsurf", MacAppName: "Windsurf", WindowsFolder: "Windsurf"},
}

// NewManagers returns one plugin per supported VS Code derivative
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

// IsInstalled implements editor.Plugin. The editor counts as installed when
// its CLI resolves or its config directory (the parent of the extensions
// directory) exists.
func (m *manager) IsInstalled(ctx context.Context) bool {
	if m.findCLI() != "" {
		return true
	}
	return fs.DirExists(filepath.Dir(m.extensionsDir()))
}

// Install implements editor.Plugin. Unlike JetBrains there is no fallback
// install mechanism, a resolvable CLI is required.
func (m *manager) Install(ctx context.Context) error {
	cli := m.findCLI()
	if cli == "" {
		return errs.NewNotFound(m.descriptor.Name)
	}

	var err error
	if m.goos == "windows" {
		// the CLI shim is a .cmd batch file which fails with os error 193
		// when executed directly, routing through cmd.exe guarantees execution
		_, err = m.process.Run("cmd", "/C", cli, installExtensionArg, extensionID)
	} else {
		_, err = m.process.Run(cli, installExtensionArg, extensionID)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to install WakaTime extension for %s", m.descriptor.Name)
	}
	return nil
}

func (m *manager) extensionsDir() string {
	return filepath.Join(m.userHome, m.descriptor.ConfigDir, "extensions")
}

func (m *manager) findCLI() string {
	return m.process.FindBinary(m.descriptor.CLI, m.cliFallbackPaths()...)
}

// cliFallbackPaths lists known install locations of the CLI shim, probed in
// order after the search path lookup failed
func (m *manager) cliFallbackPaths() []string {
	cli := m.descriptor.CLI
	switch m.goos {
	case "darwin":
		rel := filepath.Join("Applications", m.descriptor.MacAppName+".app", "Contents", "Resources", "app", "bin", cli)
		return []string{string(filepath.Separator) + rel, filepath.Join(m.userHome, rel)}
	case "windows":
		binary := cli + ".cmd"
		var paths []string
		if localAppData := m.env("LOCALAPPDATA"); localAppData != "" {
			paths = append(paths, filepath.Join(localAppData, "Programs", m.descriptor.WindowsFolder, "bin", binary))
		}
		if programFiles := m.env("ProgramFiles"); programFiles != "" {
			paths = append(paths, filepath.Join(programFiles, m.descriptor.WindowsFolder, "bin", binary))
		}
		if programFilesX86 := m.env("ProgramFiles(x86)"); programFilesX86 != "" {
			paths = append(paths, filepath.Join(programFilesX86, m.descriptor.WindowsFolder, "bin", binary))
		}
		return paths
	default:
		return []string{
			filepath.Join("/usr/bin", cli),
			filepath.Join("/usr/local/bin", cli),
			filepath.Join("/snap/bin", cli),
			filepath.Join(m.userHome, ".local", "bin", cli),
		}
	}
}
