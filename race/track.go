package race

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/breakaway-games/peloton/cards"
)

// Track is an ordered sequence of capacity-bounded sections. The
// layout is immutable once built; only occupancy changes during a
// race. Sections up to (excluding) the start boundary form the start
// zone, sections at or after the finish boundary are past the line.
type Track struct {
	name       string
	sections   []*Section
	start      int
	finish     int
	minPlayers int
	maxPlayers int
	logger     zerolog.Logger
}

// TrackOption adjusts track construction.
type TrackOption func(*Track)

// WithStart sets the exclusive end of the start zone.
func WithStart(n int) TrackOption {
	return func(t *Track) { t.start = n }
}

// WithFinish sets the finish boundary. Non-positive values count back
// from the end of the track, so -5 marks the last five sections as the
// finish straight.
func WithFinish(n int) TrackOption {
	return func(t *Track) { t.finish = n }
}

// WithPlayers sets the designed player range.
func WithPlayers(minPlayers, maxPlayers int) TrackOption {
	return func(t *Track) {
		t.minPlayers = minPlayers
		t.maxPlayers = maxPlayers
	}
}

// WithTrackLogger sets the logger used for slipstream and exhaustion
// resolution events.
func WithTrackLogger(logger zerolog.Logger) TrackOption {
	return func(t *Track) { t.logger = logger }
}

// NewTrack builds a track from section profiles. The default start
// zone is the first five sections and the default finish boundary the
// last five, matching the official stage dimensions.
func NewTrack(name string, profiles []Profile, opts ...TrackOption) (*Track, error) {
	t := &Track{
		name:       name,
		start:      5,
		finish:     -5,
		minPlayers: 3,
		maxPlayers: 4,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if len(profiles) == 0 {
		return nil, fmt.Errorf("track %q has no sections", name)
	}
	if t.finish <= 0 {
		t.finish = len(profiles) + t.finish
	}
	if t.start < 1 || t.start >= len(profiles) {
		return nil, fmt.Errorf("track %q: start boundary %d out of range", name, t.start)
	}
	if t.finish <= t.start || t.finish > len(profiles) {
		return nil, fmt.Errorf("track %q: finish boundary %d out of range", name, t.finish)
	}

	t.sections = make([]*Section, len(profiles))
	for i, p := range profiles {
		if p.Lanes < 1 {
			return nil, fmt.Errorf("track %q: section %d has no lanes", name, i)
		}
		t.sections[i] = &Section{index: i, profile: p}
	}
	return t, nil
}

// Name returns the track name.
func (t *Track) Name() string { return t.name }

// Len returns the number of sections.
func (t *Track) Len() int { return len(t.sections) }

// Section returns the section at the given index.
func (t *Track) Section(i int) *Section { return t.sections[i] }

// Sections returns all sections in track order.
func (t *Track) Sections() []*Section {
	return append([]*Section(nil), t.sections...)
}

// Start returns the exclusive end of the start zone.
func (t *Track) Start() int { return t.start }

// Finish returns the finish boundary index.
func (t *Track) Finish() int { return t.finish }

// MinPlayers returns the smallest team count the stage is designed
// for.
func (t *Track) MinPlayers() int { return t.minPlayers }

// MaxPlayers returns the largest team count the stage is designed for.
func (t *Track) MaxPlayers() int { return t.maxPlayers }

// AvailableStart returns the start zone sections that still have a
// free lane, in track order.
func (t *Track) AvailableStart() []*Section {
	var open []*Section
	for _, s := range t.sections[:t.start] {
		if !s.Full() {
			open = append(open, s)
		}
	}
	return open
}

// Riders returns every placed rider from first to last: leading
// section first, and within a section in lane order.
func (t *Track) Riders() []*Rider {
	var riders []*Rider
	for i := len(t.sections) - 1; i >= 0; i-- {
		riders = append(riders, t.sections[i].riders...)
	}
	return riders
}

// Leading returns the first rider on the track, or nil when empty.
func (t *Track) Leading() *Rider {
	for i := len(t.sections) - 1; i >= 0; i-- {
		if rs := t.sections[i].riders; len(rs) > 0 {
			return rs[0]
		}
	}
	return nil
}

// Compare orders two riders by race position: positive when a is ahead
// of b, negative when behind. Within a section the earlier lane is
// ahead. A placed rider is always ahead of an unplaced one; comparing
// two unplaced riders fails with ErrRiderNotFound.
func (t *Track) Compare(a, b *Rider) (int, error) {
	if !a.Placed() && !b.Placed() {
		return 0, fmt.Errorf("%w: neither %s nor %s is on the track", ErrRiderNotFound, a, b)
	}
	switch {
	case a == b:
		return 1, nil
	case !b.Placed():
		return 1, nil
	case !a.Placed():
		return -1, nil
	case a.position != b.position:
		if a.position > b.position {
			return 1, nil
		}
		return -1, nil
	}
	section := t.sections[a.position]
	if section.Lane(a) < section.Lane(b) {
		return 1, nil
	}
	return -1, nil
}

// CardValue resolves the movement value of a card for a rider: the
// behind value when another rider of the same team is strictly ahead,
// the front value otherwise. Teamless riders always move at the front
// value.
func (t *Track) CardValue(r *Rider, c cards.Card) int {
	if r.team == nil {
		return c.Front()
	}
	for _, mate := range r.team.riders {
		if mate == r {
			continue
		}
		if cmp, err := t.Compare(mate, r); err == nil && cmp > 0 {
			return c.Behind()
		}
	}
	return c.Front()
}

// Move advances a rider by the requested distance, honoring speed
// constraints and capacity. When enforceMin is set a minimum speed on
// the rider's current section raises the distance first. Sections with
// a max speed cannot be entered beyond their limit and clamp movement
// through them. The rider lands on the first free section scanning
// backward from the target; it stays put when every section ahead up
// to the target is full. Returns the distance actually travelled.
//
// Panics if the rider is not on the track: movement of unplaced riders
// is a sequencing bug, not an input error.
func (t *Track) Move(r *Rider, distance int, enforceMin bool) int {
	start := r.position
	if start < 0 || start >= len(t.sections) || t.sections[start].Lane(r) < 0 {
		panic(fmt.Sprintf("race: move of rider %s that is not on the track", r))
	}

	value := distance
	if enforceMin {
		if m := t.sections[start].profile.MinSpeed; m > 0 && value < m {
			value = m
		}
	}

	// The scan window is fixed by the requested value before any
	// clamping, current section included: starting on a constrained
	// section limits the move just as entering one does.
	limit := start + value
	if limit > len(t.sections)-1 {
		limit = len(t.sections) - 1
	}
	for k := 0; start+k <= limit; k++ {
		m := t.sections[start+k].profile.MaxSpeed
		if m == 0 {
			continue
		}
		if k > m {
			value = k - 1
			break
		}
		if value > m {
			value = m
		}
	}

	target := start + value
	if target > len(t.sections)-1 {
		target = len(t.sections) - 1
	}
	for pos := target; pos > start; pos-- {
		if !t.sections[pos].add(r) {
			continue
		}
		t.sections[start].remove(r)
		if pos >= t.finish {
			r.finished = true
		}
		return pos - start
	}
	return 0
}

// ResolveSlipstream moves trailing packs into gaps until no gap
// qualifies. A pack advances by exactly one section when it sits two
// sections behind another group with an empty slipstream-permitting
// section between them; every move restarts the scan because closing
// one gap can open another further back.
func (t *Track) ResolveSlipstream() {
	for {
		moved := false
		for i := 0; i+2 < len(t.sections); i++ {
			lead, gap, tail := t.sections[i+2], t.sections[i+1], t.sections[i]
			if !lead.Slipstream() || !gap.Slipstream() || !tail.Slipstream() {
				continue
			}
			if tail.Empty() || !gap.Empty() || lead.Empty() {
				continue
			}
			for _, r := range tail.Riders() {
				t.logger.Info().Stringer("rider", r).Int("section", r.position).
					Msg("rider receives slipstream")
				t.Move(r, 1, false)
			}
			moved = true
			break
		}
		if !moved {
			return
		}
	}
}

// ResolveExhaustion hands an exhaustion card to every rider leading a
// gap: riders whose next section is empty, from the start up to the
// finish boundary. Teams can opt out via their exhaustion flag;
// teamless riders always pay.
func (t *Track) ResolveExhaustion() {
	limit := t.finish + 1
	if limit > len(t.sections) {
		limit = len(t.sections)
	}
	for i := 0; i+1 < limit; i++ {
		if !t.sections[i+1].Empty() {
			continue
		}
		for _, r := range t.sections[i].Riders() {
			if r.team != nil && !r.team.exhaustion {
				continue
			}
			t.logger.Info().Stringer("rider", r).Int("section", r.position).
				Msg("rider gets exhausted")
			r.Discard(cards.Exhaustion)
		}
	}
}

// Finished reports whether any rider has reached the finish boundary.
func (t *Track) Finished() bool {
	for _, s := range t.sections[t.finish:] {
		if !s.Empty() {
			return true
		}
	}
	return false
}

// AllFinished reports whether every rider has crossed the finish
// boundary.
func (t *Track) AllFinished() bool {
	for _, s := range t.sections[:t.finish] {
		if !s.Empty() {
			return false
		}
	}
	return true
}

// Reset clears all occupants. The layout is untouched.
func (t *Track) Reset() {
	for _, s := range t.sections {
		s.reset()
	}
}
