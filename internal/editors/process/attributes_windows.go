//go:build windows

package process

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// installer CLIs must not pop up console windows
var attributes = &syscall.SysProcAttr{HideWindow: true, CreationFlags: windows.CREATE_NO_WINDOW}
