package editor

import "context"

// Plugin defines the interface to support one editor
type Plugin interface {
	ID() string
	Name() string

	// IsInstalled reports whether the editor is present on this machine.
	// Detection never fails: internal I/O errors degrade to false.
	IsInstalled(ctx context.Context) bool
	// Install installs the WakaTime plugin into the editor at its default
	// location. It spawns at most one subprocess or patches one settings
	// file, there is no retry or rollback.
	Install(ctx context.Context) error
}
