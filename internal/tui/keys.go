package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of the list screen.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	New      key.Binding
	Search   key.Binding
	Sort     key.Binding
	Pin      key.Binding
	Priority key.Binding
	Edit     key.Binding
	Delete   key.Binding
	ClearAll key.Binding
	Copy     key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Pin:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin")),
		Priority: key.NewBinding(key.WithKeys("!"), key.WithHelp("!", "priority")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		ClearAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// help lists the bindings shown in the footer, in order.
func (k keyMap) help() []key.Binding {
	return []key.Binding{k.New, k.Search, k.Sort, k.Pin, k.Priority, k.Edit, k.Delete, k.ClearAll, k.Copy, k.Quit}
}

// Form and dialog keys.
var (
	keySubmit  = key.NewBinding(key.WithKeys("enter"))
	keyCancel  = key.NewBinding(key.WithKeys("esc"))
	keyNext    = key.NewBinding(key.WithKeys("tab", "shift+tab"))
	keyConfirm = key.NewBinding(key.WithKeys("y", "Y", "enter"))
	keyRefuse  = key.NewBinding(key.WithKeys("n", "N", "esc"))
)
