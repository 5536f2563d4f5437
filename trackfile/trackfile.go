// Package trackfile builds race tracks: from HCL layout files and from
// the built-in catalog of official stages. A layout is a named track
// block with segment blocks, each naming a section profile and a run
// length:
//
//	track "col-du-granon" {
//	  start  = 4
//	  finish = -5
//
//	  segment {
//	    profile = "flat"
//	    length  = 20
//	  }
//	  segment {
//	    profile = "ascent"
//	    length  = 8
//	  }
//	  segment {
//	    profile = "finish"
//	    length  = 5
//	  }
//	}
package trackfile

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/breakaway-games/peloton/race"
)

// Section profiles, mapped to capacity/slipstream/speed parameters.
// Feed zones cap the speed riders may carry through them; descents
// force a minimum.
var profiles = map[string]race.Profile{
	"flat":           {Lanes: 2, Slipstream: true},
	"wide":           {Lanes: 3, Slipstream: true},
	"ascent":         {Lanes: 2, Slipstream: false, MaxSpeed: 5},
	"descent":        {Lanes: 2, Slipstream: true, MinSpeed: 5},
	"feed":           {Lanes: 3, Slipstream: true, MaxSpeed: 4},
	"cobbles":        {Lanes: 2, Slipstream: false},
	"cobbles-narrow": {Lanes: 1, Slipstream: false},
	"finish":         {Lanes: 2, Slipstream: false},
	"finish-wide":    {Lanes: 3, Slipstream: false},
}

// Profile looks up a section profile by name.
func Profile(name string) (race.Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// ProfileNames lists the known section profiles, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// File is the top-level HCL layout structure.
type File struct {
	Tracks []TrackBlock `hcl:"track,block"`
}

// TrackBlock is one named track layout.
type TrackBlock struct {
	Name       string         `hcl:"name,label"`
	Start      int            `hcl:"start,optional"`
	Finish     int            `hcl:"finish,optional"`
	MinPlayers int            `hcl:"min_players,optional"`
	MaxPlayers int            `hcl:"max_players,optional"`
	Segments   []SegmentBlock `hcl:"segment,block"`
}

// SegmentBlock is a run of identically profiled sections.
type SegmentBlock struct {
	Profile string `hcl:"profile"`
	Length  int    `hcl:"length,optional"`
}

// Parse decodes HCL layout source into tracks. The filename is used in
// diagnostics only.
func Parse(src []byte, filename string) ([]*race.Track, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", filename, diags.Error())
	}

	var f File
	if diags := gohcl.DecodeBody(file.Body, nil, &f); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", filename, diags.Error())
	}
	if len(f.Tracks) == 0 {
		return nil, fmt.Errorf("%s: no track blocks", filename)
	}

	tracks := make([]*race.Track, 0, len(f.Tracks))
	seen := make(map[string]bool, len(f.Tracks))
	for _, block := range f.Tracks {
		if seen[block.Name] {
			return nil, fmt.Errorf("%s: duplicate track %q", filename, block.Name)
		}
		seen[block.Name] = true
		t, err := block.build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// Load reads and parses an HCL layout file.
func Load(path string) ([]*race.Track, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(src, path)
}

func (b TrackBlock) build() (*race.Track, error) {
	var sections []race.Profile
	for _, seg := range b.Segments {
		p, ok := profiles[seg.Profile]
		if !ok {
			return nil, fmt.Errorf("track %q: unknown profile %q", b.Name, seg.Profile)
		}
		length := seg.Length
		if length == 0 {
			length = 1
		}
		if length < 0 {
			return nil, fmt.Errorf("track %q: negative length for %q segment", b.Name, seg.Profile)
		}
		for range length {
			sections = append(sections, p)
		}
	}

	var opts []race.TrackOption
	if b.Start != 0 {
		opts = append(opts, race.WithStart(b.Start))
	}
	if b.Finish != 0 {
		opts = append(opts, race.WithFinish(b.Finish))
	}
	if b.MinPlayers != 0 || b.MaxPlayers != 0 {
		opts = append(opts, race.WithPlayers(b.MinPlayers, b.MaxPlayers))
	}
	return race.NewTrack(b.Name, sections, opts...)
}
