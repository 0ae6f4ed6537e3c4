package desk

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"

	"github.com/marcus/clinic/internal/directory"
	"github.com/marcus/clinic/internal/models"
)

// doctorSource adapts a doctor slice for fuzzy matching on name and specialty
type doctorSource []models.Doctor

func (s doctorSource) String(i int) string { return s[i].Name + " " + s[i].Specialty }
func (s doctorSource) Len() int            { return len(s) }

// panel is the doctor directory
type panel struct {
	doctors []models.Doctor
	visible []int // indexes into doctors, in display order
	cursor  int
	offset  int

	filter    textinput.Model
	filtering bool

	loading   bool
	fromCache bool
	syncedAt  time.Time
	err       error
}

func newPanel() *panel {
	in := textinput.New()
	in.Prompt = "/"
	in.Placeholder = "filter by name or specialty"
	in.CharLimit = 64
	return &panel{filter: in}
}

// setListing replaces the directory and reapplies the filter
func (p *panel) setListing(l directory.Listing) {
	p.doctors = l.Doctors
	p.fromCache = l.FromCache
	p.syncedAt = l.SyncedAt
	p.err = nil
	p.loading = false
	p.applyFilter()
}

// applyFilter recomputes the visible rows. Fuzzy matches are ordered by
// score.
func (p *panel) applyFilter() {
	query := strings.TrimSpace(p.filter.Value())
	p.visible = p.visible[:0]
	if query == "" {
		for i := range p.doctors {
			p.visible = append(p.visible, i)
		}
	} else {
		for _, m := range fuzzy.FindFrom(query, doctorSource(p.doctors)) {
			p.visible = append(p.visible, m.Index)
		}
	}
	p.cursor = clamp(p.cursor, 0, max(0, len(p.visible)-1))
}

func (p *panel) startFilter() tea.Cmd {
	p.filtering = true
	return p.filter.Focus()
}

func (p *panel) stopFilter(keep bool) {
	p.filtering = false
	p.filter.Blur()
	if !keep {
		p.filter.SetValue("")
		p.applyFilter()
	}
}

func (p *panel) updateFilter(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.applyFilter()
	return cmd
}

func (p *panel) move(delta int) {
	p.cursor = clamp(p.cursor+delta, 0, max(0, len(p.visible)-1))
}

// selected returns the doctor under the cursor
func (p *panel) selected() (models.Doctor, bool) {
	if p.cursor < 0 || p.cursor >= len(p.visible) {
		return models.Doctor{}, false
	}
	return p.doctors[p.visible[p.cursor]], true
}

func (p *panel) view(width, height int) string {
	var lines []string

	title := headerStyle.Render(fmt.Sprintf("Doctors (%d)", len(p.visible)))
	if p.fromCache {
		title += " " + staleStyle.Render("offline, cached "+formatSynced(p.syncedAt))
	}
	lines = append(lines, title)

	if p.filtering || p.filter.Value() != "" {
		lines = append(lines, p.filter.View())
	}

	switch {
	case p.loading && len(p.doctors) == 0:
		lines = append(lines, hintStyle.Render("Loading doctors..."))
	case p.err != nil:
		lines = append(lines, statusErrorStyle.Render("Could not load doctors: "+p.err.Error()))
	case len(p.visible) == 0:
		lines = append(lines, hintStyle.Render("No doctors found"))
	}

	rows := max(1, height-len(lines))
	if p.cursor < p.offset {
		p.offset = p.cursor
	} else if p.cursor >= p.offset+rows {
		p.offset = p.cursor - rows + 1
	}

	for i := p.offset; i < len(p.visible) && i < p.offset+rows; i++ {
		d := p.doctors[p.visible[i]]
		times := "Not available"
		if len(d.AvailableTimes) > 0 {
			times = strings.Join(d.AvailableTimes, ", ")
		}

		cursor, style := "  ", rowNormal
		if i == p.cursor {
			cursor, style = "> ", rowSelected
		}
		line := cursor + style.Render(d.Name) + "  " + specStyle.Render(d.Specialty) + "  " + hintStyle.Render(times)
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}

	return strings.Join(lines, "\n")
}

func formatSynced(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("Jan 2 15:04")
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
