package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/animtodo/internal/views"
)

type keyMap struct {
	Quit     key.Binding
	Focus    key.Binding
	Back     key.Binding
	Submit   key.Binding
	Priority key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Sort     key.Binding
	Theme    key.Binding
	Search   key.Binding
	New      key.Binding
	Palette  key.Binding
	Help     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to list")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add task")),
		Priority: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "cycle priority")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle done")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		New:      key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "new task")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Toggle, k.Delete, k.Sort, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Priority, k.Focus, k.Back},
		{k.Up, k.Down, k.Toggle, k.Delete},
		{k.Sort, k.Search, k.New, k.Theme},
		{k.Palette, k.Help, k.Quit},
	}
}

const helpMarkdown = `# Keys

| key | action |
| --- | --- |
| ` + "`tab`" + ` | move between new task, search and list |
| ` + "`enter`" + ` | add the typed task |
| ` + "`ctrl+p`" + ` | cycle the new task priority |
| ` + "`space`" + ` | toggle completion |
| ` + "`d`" + ` | delete the selected task |
| ` + "`s`" + ` | cycle sort: default, completed, incomplete, priority |
| ` + "`t`" + ` | toggle light/dark theme |
| ` + "`:`" + ` | command palette |

# Commands

- ` + "`add [low|medium|high] <title>`" + `
- ` + "`delete <id>`" + `, ` + "`toggle <id>`" + `
- ` + "`search <text>`" + ` (empty clears), ` + "`sort <criterion>`" + `, ` + "`theme`" + `
`

func (m Model) renderHelpPanel() string {
	if !m.HelpVisible {
		return ""
	}
	resolved := m.ResolvedTheme()
	if cached, ok := m.helpCache[resolved]; ok {
		return cached
	}
	out := strings.TrimSpace(views.RenderMarkdown(helpMarkdown, resolved))
	m.helpCache[resolved] = out
	return out
}

func (m Model) renderFooter() string {
	return m.helpModel.View(m.keys)
}
