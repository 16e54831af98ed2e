// Package keymap holds the key bindings of the capture and picker views.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap groups the bindings by the view that reads them.
type KeyMap struct {
	// Global.
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Capture view.
	Submit key.Binding

	// Picker view.
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	AddTag  key.Binding
	Preview key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// bind builds a binding whose help shows label, defaulting to the first key.
func bind(label, desc string, keys ...string) key.Binding {
	if label == "" {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the default keybindings. Enter and esc mean
// different things in the capture and picker views.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: bind("", "quit", "ctrl+c"),
		Help: bind("", "help", "?"),
		Back: bind("", "back", "esc"),

		Submit: bind("", "prepare", "enter"),

		Up:      bind("↑/k", "up", "up", "k"),
		Down:    bind("↓/j", "down", "down", "j"),
		Toggle:  bind("space", "toggle", " ", "x"),
		AddTag:  bind("", "add tags", "a", "+"),
		Preview: bind("", "preview", "p"),
		Confirm: bind("", "publish", "enter"),
		Cancel:  bind("", "cancel", "esc", "q"),
	}
}

// ShortHelp is the hint line of the capture view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Quit}
}

// PickerHelp is the hint line of the tag picker.
func (k *KeyMap) PickerHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.AddTag, k.Preview, k.Confirm, k.Cancel}
}

// FullHelp lists every binding in columns for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Back},
		{k.Up, k.Down, k.Toggle, k.AddTag},
		{k.Preview, k.Confirm, k.Cancel},
		{k.Help, k.Quit},
	}
}

// Matches reports whether keyStr is one of binding's keys.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}
