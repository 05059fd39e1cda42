package errors

import "fmt"

// NewUI returns a new UI error message
func NewUI(ui, msg string) error {
	return UI{
		ui:  ui,
		msg: msg,
	}
}

// UI is an error with a message for the user interface and a fallback message, e.g. for logs
type UI struct {
	msg string
	ui  string
}

// Error implements the error interface and returns the fallback message
func (e UI) Error() string {
	return e.msg
}

// UI returns the message intended for the user interface or, when empty, the fallback message
func (e UI) UI() string {
	if e.ui != "" {
		return e.ui
	}
	return e.msg
}

// NewNotFound returns the error reported when an editor's CLI could not be
// resolved on the search path or at any known install location
func NewNotFound(editor string) error {
	return NotFound{editor: editor}
}

// NotFound reports an unresolvable editor CLI. Install aborts before any
// subprocess is spawned.
type NotFound struct {
	editor string
}

// Error implements the error interface
func (e NotFound) Error() string {
	return fmt.Sprintf("%s CLI not found. Is it installed and in your PATH?", e.editor)
}

// Editor returns the display name of the editor whose CLI is missing
func (e NotFound) Editor() string {
	return e.editor
}
