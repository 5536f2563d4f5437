package race

// Phase tracks race progress. Phases only ever advance: once the race
// is decided no further actions are accepted.
type Phase uint8

const (
	// PhaseStart is the placement phase: teams put their riders into
	// the start zone one at a time.
	PhaseStart Phase = iota
	// PhaseRace is the main phase: rounds of hand draws, card
	// commitments and movement resolution.
	PhaseRace
	// PhaseFinish is terminal: a rider has crossed the line.
	PhaseFinish
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseRace:
		return "race"
	case PhaseFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// next returns the following phase, saturating at PhaseFinish.
func (p Phase) next() Phase {
	if p >= PhaseFinish {
		return PhaseFinish
	}
	return p + 1
}
