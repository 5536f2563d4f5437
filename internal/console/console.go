// Package console implements the human team Director: interactive
// terminal pickers for start positions, rider selection and card
// choice, with the track rendered for context before each prompt.
package console

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/breakaway-games/peloton/cards"
	"github.com/breakaway-games/peloton/internal/display"
	"github.com/breakaway-games/peloton/race"
)

// Director prompts a human for every team decision. It satisfies
// race.Director; the engine loop blocks while the prompt is open.
type Director struct {
	in     io.Reader
	out    io.Writer
	logger *log.Logger
	render *display.Renderer
}

// Option adjusts Director construction.
type Option func(*Director)

// WithIO redirects prompt input and output, used by tests.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(d *Director) {
		d.in = in
		d.out = out
	}
}

// WithLogger sets the logger for prompt warnings.
func WithLogger(logger *log.Logger) Option {
	return func(d *Director) { d.logger = logger }
}

// New builds a human Director on stdin/stdout.
func New(opts ...Option) *Director {
	d := &Director{
		in:     os.Stdin,
		out:    os.Stdout,
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "console"}),
		render: display.New(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// pick runs a picker prompt and returns the chosen index. When the
// prompt is aborted or fails, it falls back to the first option so the
// race can continue; the engine treats a missing answer as a contract
// violation, not the player changing their mind.
func (d *Director) pick(title string, items []string) int {
	if len(items) == 1 {
		return 0
	}
	m := newPicker(title, items)
	p := tea.NewProgram(m, tea.WithInput(d.in), tea.WithOutput(d.out))
	final, err := p.Run()
	if err != nil {
		d.logger.Warn("prompt failed, using first option", "err", err)
		return 0
	}
	done, ok := final.(pickerModel)
	if !ok || done.aborted {
		d.logger.Warn("prompt aborted, using first option")
		return 0
	}
	return done.cursor
}

// StartingPosition shows the start zone and asks which rider to place
// where.
func (d *Director) StartingPosition(g *race.Game, team *race.Team) (*race.Rider, int) {
	fmt.Fprintln(d.out, d.render.StartZone(g.Track()))

	var unplaced []*race.Rider
	for _, r := range team.Riders() {
		if !r.Placed() {
			unplaced = append(unplaced, r)
		}
	}
	if len(unplaced) == 0 {
		return nil, 0
	}

	labels := make([]string, len(unplaced))
	for i, r := range unplaced {
		labels[i] = r.String()
	}
	rider := unplaced[d.pick("Place which rider?", labels)]

	open := g.Track().AvailableStart()
	labels = make([]string, len(open))
	for i, s := range open {
		labels[len(open)-1-i] = fmt.Sprintf("section %d", s.Index())
	}
	choice := d.pick(fmt.Sprintf("Starting position for %s?", rider), labels)
	return rider, open[len(open)-1-choice].Index()
}

// NextRider shows the track and asks which rider races next.
func (d *Director) NextRider(g *race.Game, team *race.Team) *race.Rider {
	available := team.AvailableRiders()
	if len(available) == 0 {
		return nil
	}
	fmt.Fprintln(d.out, d.render.Track(g.Track()))

	labels := make([]string, len(available))
	for i, r := range available {
		labels[i] = fmt.Sprintf("%s at section %d", r, r.Position())
	}
	return available[d.pick("Select the next rider", labels)]
}

// ChooseCard asks which card of the drawn hand to play.
func (d *Director) ChooseCard(_ *race.Game, _ *race.Team, r *race.Rider) (cards.Card, bool) {
	hand := r.Hand()
	if len(hand) == 0 {
		return 0, false
	}
	cards.Sort(hand)

	labels := make([]string, len(hand))
	for i, c := range hand {
		labels[i] = c.String()
	}
	return hand[d.pick(fmt.Sprintf("Card for %s?", r), labels)], true
}
