package jetbrains

import "path/filepath"

// configRoot returns the JetBrains configuration root for the selected
// platform. An empty string means the root can't be determined.
func (m *manager) configRoot() string {
	switch m.goos {
	case "darwin":
		return filepath.Join(m.userHome, "Library", "Application Support", "JetBrains")
	case "windows":
		if appData := m.env("APPDATA"); appData != "" {
			return filepath.Join(appData, "JetBrains")
		}
		return ""
	default:
		return filepath.Join(m.userHome, ".config", "JetBrains")
	}
}

// cliFallbackPaths lists known install locations of the launcher, probed in
// order after the search path lookup failed. The tables are disjoint per
// platform, only the selected platform's table is ever probed.
func (m *manager) cliFallbackPaths() []string {
	cli := m.descriptor.CLI
	switch m.goos {
	case "darwin":
		var paths []string
		for _, app := range m.descriptor.AppNames {
			rel := filepath.Join("Applications", app+".app", "Contents", "MacOS", cli)
			paths = append(paths, string(filepath.Separator)+rel, filepath.Join(m.userHome, rel))
		}
		return paths
	case "windows":
		var paths []string
		if localAppData := m.env("LOCALAPPDATA"); localAppData != "" {
			paths = append(paths, filepath.Join(localAppData, "JetBrains", "Toolbox", "apps", cli, "bin", cli+".cmd"))
		}
		if programFiles := m.env("ProgramFiles"); programFiles != "" {
			for _, app := range m.descriptor.AppNames {
				paths = append(paths, filepath.Join(programFiles, "JetBrains", app, "bin", cli+".bat"))
			}
		}
		return paths
	default:
		return []string{
			filepath.Join(m.userHome, ".local", "share", "JetBrains", "Toolbox", "apps", cli, "bin", cli),
			filepath.Join("/opt", cli, "bin", cli),
			filepath.Join("/usr/local/bin", cli),
			filepath.Join("/snap/bin", cli),
		}
	}
}
