// Package inject sends transcripts to the focused application using robotgo
// keystroke simulation or a clipboard paste.
package inject

import (
	"fmt"
	"runtime"

	"github.com/go-vgo/robotgo"
)

// Injector types or pastes text into the active application.
type Injector struct {
	method string // "type" or "paste"
}

// New returns an Injector for method, or nil for "none" and "" so callers
// can skip injection with a nil check.
func New(method string) *Injector {
	switch method {
	case "type", "paste":
		return &Injector{method: method}
	default:
		return nil
	}
}

// Method returns the configured injection method.
func (inj *Injector) Method() string {
	return inj.method
}

// Inject sends text to the active application using the configured method.
func (inj *Injector) Inject(text string) error {
	if text == "" {
		return nil
	}

	switch inj.method {
	case "paste":
		return inj.paste(text)
	default: // "type"
		return inj.typeText(text)
	}
}

// typeText simulates individual keystrokes. Preserves clipboard contents
// but is slower for long text.
func (inj *Injector) typeText(text string) error {
	robotgo.Type(text)
	return nil
}

// paste copies text to the clipboard and pastes it. The previous clipboard
// contents are restored afterwards (best effort).
func (inj *Injector) paste(text string) error {
	prev, _ := robotgo.ReadAll()

	if err := robotgo.WriteAll(text); err != nil {
		return fmt.Errorf("inject: write to clipboard: %w", err)
	}

	mod := pasteModifier()
	if err := robotgo.KeyTap("v", mod); err != nil {
		return fmt.Errorf("inject: key tap %s+v: %w", mod, err)
	}

	_ = robotgo.WriteAll(prev)

	return nil
}

func pasteModifier() string {
	if runtime.GOOS == "darwin" {
		return "cmd"
	}
	return "ctrl"
}
