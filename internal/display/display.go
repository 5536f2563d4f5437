// Package display renders track state and standings for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/breakaway-games/peloton/cards"
	"github.com/breakaway-games/peloton/race"
)

const laneWidth = 22

// Styles holds the lipgloss styles used by the renderer.
type Styles struct {
	Banner   lipgloss.Style
	Index    lipgloss.Style
	Frame    lipgloss.Style
	Marker   lipgloss.Style
	Winner   lipgloss.Style
	Rider    lipgloss.Style
	Standing lipgloss.Style
}

// DefaultStyles returns the standard renderer styles.
func DefaultStyles() Styles {
	return Styles{
		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Index:    lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Frame:    lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		Winner:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Rider:    lipgloss.NewStyle().Bold(true),
		Standing: lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
	}
}

// Team color names accepted by race.WithColor.
var teamColors = map[string]lipgloss.Color{
	"red":     lipgloss.Color("1"),
	"green":   lipgloss.Color("2"),
	"yellow":  lipgloss.Color("3"),
	"blue":    lipgloss.Color("4"),
	"magenta": lipgloss.Color("5"),
	"cyan":    lipgloss.Color("6"),
}

// Renderer renders race state as styled text.
type Renderer struct {
	styles Styles
}

// New builds a renderer with the default styles.
func New() *Renderer {
	return &Renderer{styles: DefaultStyles()}
}

func (r *Renderer) riderStyle(rd *race.Rider) lipgloss.Style {
	style := r.styles.Rider
	if rd.Team() != nil {
		if c, ok := teamColors[rd.Team().Color()]; ok {
			style = style.Foreground(c)
		}
	}
	return style
}

func (r *Renderer) rider(rd *race.Rider) string {
	return r.riderStyle(rd).Render(rd.String())
}

func (r *Renderer) section(s *race.Section) string {
	lanes := make([]string, s.Lanes())
	occupants := s.Riders()
	for i := range lanes {
		cell := strings.Repeat(" ", laneWidth)
		if i < len(occupants) {
			name := occupants[i].String()
			if len(name) > laneWidth {
				name = name[:laneWidth]
			}
			cell = r.riderStyle(occupants[i]).Render(name) + strings.Repeat(" ", laneWidth-len(name))
		}
		lanes[i] = cell
	}

	var markers []string
	if !s.Slipstream() {
		markers = append(markers, "no-slip")
	}
	if m := s.MaxSpeed(); m > 0 {
		markers = append(markers, fmt.Sprintf("≤%d", m))
	}
	if m := s.MinSpeed(); m > 0 {
		markers = append(markers, fmt.Sprintf("≥%d", m))
	}

	line := r.styles.Index.Render(fmt.Sprintf("%3d ", s.Index())) +
		r.styles.Frame.Render("|") +
		strings.Join(lanes, r.styles.Frame.Render("|")) +
		r.styles.Frame.Render("|")
	if len(markers) > 0 {
		line += " " + r.styles.Marker.Render(strings.Join(markers, " "))
	}
	return line
}

// Track renders the occupied stretch of the track plus the finish
// straight, last section first so the race leader sits on top.
func (r *Renderer) Track(t *race.Track) string {
	first := t.Len()
	for i, s := range t.Sections() {
		if !s.Empty() {
			first = i
			break
		}
	}
	if first > 0 {
		first--
	}

	lines := []string{r.styles.Banner.Render(t.Name())}
	for i := t.Len() - 1; i >= first; i-- {
		if i == t.Finish()-1 {
			lines = append(lines, r.styles.Banner.Render("FINISH"))
		}
		lines = append(lines, r.section(t.Section(i)))
	}
	return strings.Join(lines, "\n")
}

// StartZone renders only the start zone sections, first section on
// top, for placement prompts.
func (r *Renderer) StartZone(t *race.Track) string {
	lines := make([]string, 0, t.Start())
	for i := t.Start() - 1; i >= 0; i-- {
		lines = append(lines, r.section(t.Section(i)))
	}
	return strings.Join(lines, "\n")
}

// Standings renders riders in race order with their distance to the
// finish boundary, the winner highlighted.
func (r *Renderer) Standings(g *race.Game) string {
	var b strings.Builder
	b.WriteString(r.styles.Banner.Render("STANDINGS"))
	winner := g.Winner()
	for i, rd := range g.Riders() {
		line := fmt.Sprintf("\n%2d. %s", i+1, r.rider(rd))
		if rd == winner {
			line += " " + r.styles.Winner.Render("★ winner")
		} else if toGo := g.Track().Finish() - rd.Position(); toGo > 0 {
			line += r.styles.Standing.Render(fmt.Sprintf("  %d to go", toGo))
		}
		b.WriteString(line)
	}
	return b.String()
}

// Hand renders a hand of cards as a compact single line.
func (r *Renderer) Hand(cs []cards.Card) string {
	sorted := append([]cards.Card(nil), cs...)
	cards.Sort(sorted)
	labels := make([]string, len(sorted))
	for i, c := range sorted {
		labels[i] = c.String()
	}
	return "[" + strings.Join(labels, " ") + "]"
}
