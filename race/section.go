package race

// Profile describes a section's fixed characteristics. The zero value
// of MinSpeed and MaxSpeed means unconstrained; every real constraint
// is at least 1.
type Profile struct {
	// Lanes is the rider capacity, 1 to 3 on official stages.
	Lanes int
	// Slipstream reports whether slipstream can form through this
	// section.
	Slipstream bool
	// MinSpeed forces a minimum movement when a round starts here
	// (descents push riders along).
	MinSpeed int
	// MaxSpeed caps movement into and through this section (ascents,
	// supply zones).
	MaxSpeed int
}

// Section is one cell of the track: a fixed profile plus the riders
// currently occupying it. Occupant order encodes lane arrival order;
// the rider at index 0 is at the front of the lane and wins position
// tie-breaks.
type Section struct {
	index   int
	profile Profile
	riders  []*Rider
}

// Index returns the section's position on the track.
func (s *Section) Index() int { return s.index }

// Lanes returns the rider capacity.
func (s *Section) Lanes() int { return s.profile.Lanes }

// Slipstream reports whether slipstream can pass through.
func (s *Section) Slipstream() bool { return s.profile.Slipstream }

// MinSpeed returns the forced minimum movement, 0 when unconstrained.
func (s *Section) MinSpeed() int { return s.profile.MinSpeed }

// MaxSpeed returns the movement cap, 0 when unconstrained.
func (s *Section) MaxSpeed() int { return s.profile.MaxSpeed }

// Riders returns the occupants in lane order.
func (s *Section) Riders() []*Rider {
	return append([]*Rider(nil), s.riders...)
}

// Empty reports whether no rider occupies the section.
func (s *Section) Empty() bool { return len(s.riders) == 0 }

// Full reports whether the section is at capacity.
func (s *Section) Full() bool { return len(s.riders) >= s.profile.Lanes }

// Lane returns the rider's lane in this section, or -1 when absent.
func (s *Section) Lane(r *Rider) int {
	for lane, occupant := range s.riders {
		if occupant == r {
			return lane
		}
	}
	return -1
}

// add appends a rider to the next free lane and updates its position
// handle. Returns false when the section is full.
func (s *Section) add(r *Rider) bool {
	if s.Full() {
		return false
	}
	s.riders = append(s.riders, r)
	r.position = s.index
	return true
}

// remove takes a rider out of the section. The rider's position handle
// is cleared only if it still points here, so a rider added to its
// destination first keeps the new position.
func (s *Section) remove(r *Rider) bool {
	found := false
	for i, occupant := range s.riders {
		if occupant == r {
			s.riders = append(s.riders[:i], s.riders[i+1:]...)
			found = true
			break
		}
	}
	if r.position == s.index {
		r.position = unplaced
	}
	return found
}

func (s *Section) reset() {
	s.riders = nil
}
