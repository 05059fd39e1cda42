package zed

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hackclub/hackatime-setup/internal/editors/editor"
	errs "github.com/hackclub/hackatime-setup/internal/editors/errors"
	"github.com/hackclub/hackatime-setup/internal/editors/fs"
	"github.com/hackclub/hackatime-setup/internal/editors/jsonedit"
	"github.com/hackclub/hackatime-setup/internal/editors/process"
)

const settingsFile = "settings.json"

// Zed installs extensions listed under auto_install_extensions on its next
// start, so installing means patching this key into the settings file.
var settingsKeyPath = []string{"auto_install_extensions", "wakatime"}

// NewManager returns the Zed plugin manager
func NewManager(proc process.Manager) (editor.Plugin, error) {
	home, err := proc.Home()
	if err != nil {
		return nil, err
	}

	return &manager{
		process:  proc,
		userHome: home,
		goos:     runtime.GOOS,
		env:      os.Getenv,
	}, nil
}

func newTestManager(proc process.Manager, home string, goos string, env func(string) string) *manager {
	return &manager{
		process:  proc,
		userHome: home,
		goos:     goos,
		env:      env,
	}
}

type manager struct {
	process  process.Manager
	userHome string
	goos     string
	env      func(string) string
}

// ID implements editor.Plugin
func (m *manager) ID() string {
	return "zed"
}

// Name implements editor.Plugin
func (m *manager) Name() string {
	return "Zed"
}

// IsInstalled implements editor.Plugin. Zed has no per-product config
// directory layout worth scanning, presence is checked through the
// platform's protocol handler registration or well known binary locations.
func (m *manager) IsInstalled(ctx context.Context) bool {
	switch m.goos {
	case "darwin":
		_, err := m.process.Run("/usr/bin/open", "-Ra", "zed")
		return err == nil
	case "windows":
		_, err := m.process.Run("reg", "query", `HKEY_CLASSES_ROOT\zed`)
		return err == nil
	default:
		if out, err := m.process.Run("xdg-mime", "query", "default", "x-scheme-handler/zed"); err == nil && len(bytes.TrimSpace(out)) > 0 {
			return true
		}
		return len(fs.KeepExistingFiles(m.binaryPaths())) > 0
	}
}

// Install implements editor.Plugin. No subprocess is involved, the settings
// document is patched in place and everything else in it is preserved.
func (m *manager) Install(ctx context.Context) error {
	dir := m.configDir()
	if dir == "" {
		return errs.NewUI("Could not determine the Zed configuration directory", "zed config directory not found")
	}
	return jsonedit.PatchFile(filepath.Join(dir, settingsFile), true, settingsKeyPath...)
}

func (m *manager) binaryPaths() []string {
	return []string{
		"/usr/bin/zed",
		"/usr/bin/zeditor",
		"/usr/local/bin/zed",
		filepath.Join(m.userHome, ".local", "bin", "zed"),
	}
}

// configDir returns the directory holding Zed's settings file for the
// selected platform. An empty string means it can't be determined.
func (m *manager) configDir() string {
	switch m.goos {
	case "darwin":
		return filepath.Join(m.userHome, ".config", "zed")
	case "windows":
		if appData := m.env("APPDATA"); appData != "" {
			return filepath.Join(appData, "Zed")
		}
		return ""
	default:
		// Flatpak installs read their config below a sandboxed XDG root
		if flatpak := m.env("FLATPAK_XDG_CONFIG_HOME"); flatpak != "" {
			return filepath.Join(flatpak, "zed")
		}
		if xdg := m.env("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "zed")
		}
		return filepath.Join(m.userHome, ".config", "zed")
	}
}
