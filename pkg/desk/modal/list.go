package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ListItem is one selectable row of a list modal
type ListItem struct {
	ID    string
	Label string
	Data  any
}

// ListOption configures a ListContent
type ListOption func(*ListContent)

// WithMaxVisible sets how many rows are shown at once
func WithMaxVisible(n int) ListOption {
	return func(l *ListContent) {
		if n > 0 {
			l.maxVisible = n
		}
	}
}

// OnSelect sets the callback run when enter is pressed on an item
func OnSelect(fn func(ListItem) tea.Cmd) ListOption {
	return func(l *ListContent) {
		l.onSelect = fn
	}
}

// ListContent is a scrollable list of items
type ListContent struct {
	id           string
	items        []ListItem
	selected     int
	focused      bool
	maxVisible   int
	scrollOffset int
	onSelect     func(ListItem) tea.Cmd
}

// List creates list content with the first item selected
func List(id string, items []ListItem, opts ...ListOption) *ListContent {
	l := &ListContent{
		id:         id,
		items:      items,
		maxVisible: 5,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ID returns the list's identifier
func (l *ListContent) ID() string { return l.id }

// Selected returns the selected item and false when the list is empty
func (l *ListContent) Selected() (ListItem, bool) {
	if l.selected < 0 || l.selected >= len(l.items) {
		return ListItem{}, false
	}
	return l.items[l.selected], true
}

// Focused reports whether the list has keyboard focus
func (l *ListContent) Focused() bool { return l.focused }

// FocusFirst focuses the list when it has items
func (l *ListContent) FocusFirst() (tea.Cmd, bool) {
	if len(l.items) == 0 {
		return nil, false
	}
	l.focused = true
	return nil, true
}

func (l *ListContent) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(l.items) == 0 {
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if l.selected > 0 {
			l.selected--
		}
	case "down", "j":
		if l.selected < len(l.items)-1 {
			l.selected++
		}
	case "home", "g":
		l.selected = 0
	case "end", "G":
		l.selected = len(l.items) - 1
	case "enter":
		if l.onSelect != nil {
			return l.onSelect(l.items[l.selected])
		}
	}
	return nil
}

func (l *ListContent) View(width int) string {
	if len(l.items) == 0 {
		return MutedText.Render("(no items)")
	}

	visibleCount := min(l.maxVisible, len(l.items))

	// Keep the selection in view
	if l.selected < l.scrollOffset {
		l.scrollOffset = l.selected
	} else if l.selected >= l.scrollOffset+visibleCount {
		l.scrollOffset = l.selected - visibleCount + 1
	}
	l.scrollOffset = clamp(l.scrollOffset, 0, max(0, len(l.items)-visibleCount))

	var sb strings.Builder
	if l.scrollOffset > 0 {
		sb.WriteString(MutedText.Render("↑ more above"))
		sb.WriteString("\n")
	}

	for i := 0; i < visibleCount; i++ {
		idx := l.scrollOffset + i
		item := l.items[idx]
		isSelected := idx == l.selected

		style := ListItemNormal
		cursor := "  "
		if isSelected {
			cursor = ListCursor.Render("> ")
			style = ListItemSelected
			if l.focused {
				style = ListItemFocused
			}
		}

		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(cursor + style.MaxWidth(max(1, width-2)).Render(item.Label))
	}

	if l.scrollOffset+visibleCount < len(l.items) {
		sb.WriteString("\n")
		sb.WriteString(MutedText.Render("↓ more below"))
	}
	return sb.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
