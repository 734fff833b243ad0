package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next     key.Binding
	prev     key.Binding
	upload   key.Binding
	profile  key.Binding
	modeling key.Binding
	download key.Binding
	focus    key.Binding
	blur     key.Binding
	submit   key.Binding
	train    key.Binding
	cancel   key.Binding
	model    key.Binding
	report   key.Binding
	dismiss  key.Binding
	help     key.Binding
	quit     key.Binding
	abort    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:     key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		prev:     key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
		upload:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "upload")),
		profile:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "profiling")),
		modeling: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "modeling")),
		download: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "download")),
		focus:    key.NewBinding(key.WithKeys("i", "/"), key.WithHelp("i", "edit path")),
		blur:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done editing")),
		submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "upload")),
		train:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "train")),
		cancel:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel")),
		model:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "download model")),
		report:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "download report")),
		dismiss:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		abort:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.upload, k.profile, k.modeling, k.download},
		{k.next, k.prev, k.focus, k.submit},
		{k.train, k.cancel, k.model, k.report},
		{k.dismiss, k.help, k.quit},
	}
}
