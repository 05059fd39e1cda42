package vscode

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/hackclub/hackatime-setup/internal/editors/errors"
	"github.com/hackclub/hackatime-setup/internal/editors/process"
	"github.com/stretchr/testify/require"
)

func testDescriptor() Descriptor {
	return Descriptor{
		ID:            "vscode",
		Name:          "Visual Studio Code",
		ConfigDir:     ".vscode",
		CLI:           "code",
		MacAppName:    "Visual Studio Code",
		WindowsFolder: "Microsoft VS Code",
	}
}

func noEnv(string) string { return "" }

func TestIsInstalledViaConfigDir(t *testing.T) {
	home := t.TempDir()
	err := os.MkdirAll(filepath.Join(home, ".vscode", "extensions"), 0700)
	require.NoError(t, err)

	mgr := newManager(testDescriptor(), &process.MockManager{}, home, "linux", noEnv)
	require.True(t, mgr.IsInstalled(context.Background()))
}

func TestIsInstalledViaCLI(t *testing.T) {
	mockProcessManager := &process.MockManager{
		BinaryLocation: func(name string, fallbacks []string) string {
			if name == "code" {
				return "/usr/bin/code"
			}
			return ""
		},
	}

	mgr := newManager(testDescriptor(), mockProcessManager, t.TempDir(), "linux", noEnv)
	require.True(t, mgr.IsInstalled(context.Background()))
}

func TestIsNotInstalled(t *testing.T) {
	mgr := newManager(testDescriptor(), &process.MockManager{}, t.TempDir(), "linux", noEnv)
	require.False(t, mgr.IsInstalled(context.Background()))
}

func TestInstall(t *testing.T) {
	var commands []string
	mockProcessManager := &process.MockManager{
		BinaryLocation: func(name string, fallbacks []string) string {
			return "/usr/bin/code"
		},
		RunResult: func(name string, arg ...string) ([]byte, error) {
			commands = append(commands, name+" "+strings.Join(arg, " "))
			return []byte("Extension 'WakaTime.vscode-wakatime' was successfully installed!"), nil
		},
	}

	mgr := newManager(testDescriptor(), mockProcessManager, t.TempDir(), "linux", noEnv)
	require.NoError(t, mgr.Install(context.Background()))
	require.Equal(t, []string{"/usr/bin/code --install-extension WakaTime.vscode-wakatime"}, commands)
}

func TestInstallWindowsUsesCommandShell(t *testing.T) {
	var commands []string
	mockProcessManager := &process.MockManager{
		BinaryLocation: func(name string, fallbacks []string) string {
			return `C:\Program Files\Microsoft VS Code\bin\code.cmd`
		},
		RunResult: func(name string, arg ...string) ([]byte, error) {
			commands = append(commands, name+" "+strings.Join(arg, " "))
			return nil, nil
		},
	}

	mgr := newManager(testDescriptor(), mockProcessManager, t.TempDir(), "windows", noEnv)
	require.NoError(t, mgr.Install(context.Background()))
	require.Equal(t, []string{`cmd /C C:\Program Files\Microsoft VS Code\bin\code.cmd --install-extension WakaTime.vscode-wakatime`}, commands)
}

func TestInstallCLINotFound(t *testing.T) {
	// a present config dir doesn't help, installing always needs the CLI
	home := t.TempDir()
	err := os.MkdirAll(filepath.Join(home, ".vscode", "extensions"), 0700)
	require.NoError(t, err)

	spawned := false
	mockProcessManager := &process.MockManager{
		RunResult: func(name string, arg ...string) ([]byte, error) {
			spawned = true
			return nil, nil
		},
	}

	mgr := newManager(testDescriptor(), mockProcessManager, home, "linux", noEnv)
	installErr := mgr.Install(context.Background())
	require.Error(t, installErr)

	var notFound errs.NotFound
	require.True(t, errors.As(installErr, &notFound))
	require.False(t, spawned)
}

func TestInstallSubprocessFailure(t *testing.T) {
	mockProcessManager := &process.MockManager{
		BinaryLocation: func(name string, fallbacks []string) string {
			return "/usr/bin/code"
		},
	}

	// MockManager without RunResult fails every invocation
	mgr := newManager(testDescriptor(), mockProcessManager, t.TempDir(), "linux", noEnv)
	err := mgr.Install(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "Visual Studio Code")
}

func TestCLIFallbackPathsPerPlatform(t *testing.T) {
	d := testDescriptor()
	home := "/home/user"

	linux := newManager(d, &process.MockManager{}, home, "linux", noEnv)
	require.Equal(t, []string{
		"/usr/bin/code",
		"/usr/local/bin/code",
		"/snap/bin/code",
		filepath.Join(home, ".local", "bin", "code"),
	}, linux.cliFallbackPaths())

	darwin := newManager(d, &process.MockManager{}, home, "darwin", noEnv)
	require.Contains(t, darwin.cliFallbackPaths(),
		filepath.Join("/Applications", "Visual Studio Code.app", "Contents", "Resources", "app", "bin", "code"))

	env := func(key string) string {
		return map[string]string{
			"LOCALAPPDATA":      filepath.Join("C:", "Users", "user", "AppData", "Local"),
			"ProgramFiles":      filepath.Join("C:", "Program Files"),
			"ProgramFiles(x86)": filepath.Join("C:", "Program Files (x86)"),
		}[key]
	}
	windows := newManager(d, &process.MockManager{}, home, "windows", env)
	require.Len(t, windows.cliFallbackPaths(), 3)
	for _, p := range windows.cliFallbackPaths() {
		require.True(t, strings.HasSuffix(p, "code.cmd"), p)
	}
}
