package trackfile

import (
	"fmt"
	"strings"

	"github.com/breakaway-games/peloton/race"
)

type run struct {
	profile string
	length  int
}

func seg(profile string, length int) run {
	return run{profile: profile, length: length}
}

type stageSpec struct {
	name string
	opts []race.TrackOption
	runs []run
}

// The official stage catalog. Every stage ends in a five-section
// finish straight unless noted; mountain stages pull the start or
// finish boundary in.
var stages = []stageSpec{
	{
		name: "avenue-corso-paseo",
		runs: []run{seg("flat", 73), seg("finish", 5)},
	},
	{
		name: "firenze-milano",
		runs: []run{
			seg("flat", 22), seg("ascent", 5), seg("descent", 3),
			seg("flat", 16), seg("ascent", 7), seg("descent", 3),
			seg("flat", 17), seg("finish", 5),
		},
	},
	{
		name: "la-classicissima",
		opts: []race.TrackOption{race.WithStart(4)},
		runs: []run{
			seg("flat", 14), seg("ascent", 10), seg("descent", 4),
			seg("flat", 12), seg("ascent", 5), seg("descent", 4),
			seg("flat", 5), seg("ascent", 3), seg("descent", 3),
			seg("flat", 13), seg("finish", 5),
		},
	},
	{
		name: "la-haut-montagne",
		opts: []race.TrackOption{race.WithFinish(-4)},
		runs: []run{
			seg("flat", 36), seg("ascent", 7), seg("descent", 5),
			seg("flat", 14), seg("ascent", 12), seg("finish", 4),
		},
	},
	{
		name: "le-col-du-ballon",
		opts: []race.TrackOption{race.WithStart(4)},
		runs: []run{
			seg("flat", 12), seg("ascent", 3), seg("descent", 5),
			seg("flat", 18), seg("ascent", 4), seg("descent", 4),
			seg("flat", 10), seg("ascent", 5), seg("descent", 4),
			seg("flat", 8), seg("finish", 5),
		},
	},
	{
		name: "plateaux-de-wallonie",
		opts: []race.TrackOption{race.WithStart(4)},
		runs: []run{
			seg("flat", 16), seg("ascent", 3), seg("descent", 3),
			seg("flat", 6), seg("ascent", 2), seg("descent", 2),
			seg("flat", 34), seg("ascent", 2), seg("flat", 5),
			seg("finish", 5),
		},
	},
	{
		name: "ronde-van-wevelgem",
		runs: []run{
			seg("flat", 46), seg("ascent", 3), seg("descent", 5),
			seg("flat", 6), seg("ascent", 5), seg("descent", 3),
			seg("flat", 5), seg("finish", 5),
		},
	},
	{
		name: "stage-7",
		runs: []run{
			seg("flat", 12), seg("feed", 5), seg("flat", 5),
			seg("ascent", 6), seg("descent", 2), seg("flat", 10),
			seg("feed", 5), seg("flat", 7), seg("ascent", 5),
			seg("descent", 3), seg("flat", 13), seg("finish", 5),
		},
	},
	{
		name: "stage-7-5-6",
		opts: []race.TrackOption{race.WithPlayers(5, 6)},
		runs: []run{
			seg("wide", 11), seg("flat", 1), seg("feed", 5),
			seg("flat", 5), seg("ascent", 6), seg("descent", 2),
			seg("flat", 10), seg("feed", 5), seg("flat", 7),
			seg("ascent", 5), seg("descent", 3), seg("flat", 4),
			seg("wide", 2), seg("flat", 10), seg("finish", 5),
		},
	},
	{
		name: "stage-9",
		opts: []race.TrackOption{race.WithStart(4)},
		runs: []run{
			seg("flat", 12), seg("feed", 5), seg("flat", 3),
			seg("cobbles-narrow", 1), seg("cobbles", 1),
			seg("cobbles-narrow", 1), seg("cobbles", 1),
			seg("cobbles-narrow", 3), seg("cobbles", 1),
			seg("cobbles-narrow", 1), seg("flat", 11),
			seg("feed", 5), seg("flat", 6),
			seg("cobbles-narrow", 1), seg("cobbles", 1),
			seg("cobbles-narrow", 4), seg("cobbles", 1),
			seg("cobbles-narrow", 1), seg("flat", 14),
			seg("finish", 5),
		},
	},
}

func (s stageSpec) build() *race.Track {
	var sections []race.Profile
	for _, r := range s.runs {
		p, ok := profiles[r.profile]
		if !ok {
			panic(fmt.Sprintf("trackfile: stage %s uses unknown profile %q", s.name, r.profile))
		}
		for range r.length {
			sections = append(sections, p)
		}
	}
	t, err := race.NewTrack(s.name, sections, s.opts...)
	if err != nil {
		panic(fmt.Sprintf("trackfile: bad stage %s: %v", s.name, err))
	}
	return t
}

// StageNames lists the built-in stages in catalog order.
func StageNames() []string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.name
	}
	return names
}

// Stage builds a fresh copy of a built-in stage, so concurrent races
// never share section occupancy.
func Stage(name string) (*race.Track, error) {
	for _, s := range stages {
		if s.name == name {
			return s.build(), nil
		}
	}
	return nil, fmt.Errorf("trackfile: unknown stage %q (have %s)",
		name, strings.Join(StageNames(), ", "))
}

// StageSummary describes a stage's layout as profile runs, e.g.
// "flat×22 ascent×5 descent×3 …".
func StageSummary(name string) (string, error) {
	for _, s := range stages {
		if s.name != name {
			continue
		}
		parts := make([]string, len(s.runs))
		for i, r := range s.runs {
			parts[i] = fmt.Sprintf("%s×%d", r.profile, r.length)
		}
		return strings.Join(parts, " "), nil
	}
	return "", fmt.Errorf("trackfile: unknown stage %q", name)
}
