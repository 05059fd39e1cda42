//go:build !windows

package process

import "syscall"

var attributes = &syscall.SysProcAttr{}
