package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	acceptSnapshot key.Binding
	acceptRemote   key.Binding
	copyReport     key.Binding
	buildInfo      key.Binding
	confirm        key.Binding
	cancel         key.Binding
	quit           key.Binding
}

var keys = keyMap{
	acceptSnapshot: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "accept snapshot")),
	acceptRemote:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "accept remote")),
	copyReport:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy report")),
	buildInfo:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "version")),
	confirm:        key.NewBinding(key.WithKeys("y", "enter")),
	cancel:         key.NewBinding(key.WithKeys("n", "esc")),
	quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
