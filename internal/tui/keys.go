package tui

import "charm.land/bubbles/v2/key"

type keyMap struct {
	DeviceUp   key.Binding
	DeviceDown key.Binding
	Focus      key.Binding
	Blur       key.Binding
	Copy       key.Binding
	ClearPanel key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		DeviceUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "next device"),
		),
		DeviceDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "previous device"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "edit text"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "done editing"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy"),
		),
		ClearPanel: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// shortHelp lists the bindings shown in the footer for the current focus.
func (k keyMap) shortHelp(panelFocused bool) []key.Binding {
	if panelFocused {
		return []key.Binding{k.Blur, k.Copy}
	}
	return []key.Binding{k.DeviceUp, k.DeviceDown, k.Focus, k.Copy, k.ClearPanel, k.Quit}
}
