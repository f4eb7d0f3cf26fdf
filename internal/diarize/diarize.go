// Package diarize attributes transcript segments to the two parties of a
// phone call using textual cues alone. No acoustic speaker models are
// involved: turns are inferred from introductions, direct address, and
// silence gaps, then mapped to names where the dialogue reveals them.
package diarize

import (
	"fmt"

	"github.com/anubhavkohli2718/call-summarzy/internal/transcription"
)

// Config tunes turn detection. Values come from service configuration so
// deployments can adapt to the pacing of their audio.
type Config struct {
	// GapSeconds is the minimum silence between consecutive segments that
	// forces a speaker change. Must be positive.
	GapSeconds float64
}

// DefaultConfig returns the tuning used when no overrides are configured.
func DefaultConfig() Config {
	return Config{GapSeconds: 1.5}
}

// LabeledSegment is a transcript segment with a speaker label attached.
// Labels are either resolved names ("Anthony") or synthetic ("Speaker 1").
type LabeledSegment struct {
	Speaker string
	Start   float64
	End     float64
	Text    string
}

// turn is a maximal run of consecutive segments attributed to one role.
type turn struct {
	role  int // 0 or 1, alternating between the two parties
	first int
	last  int
}

// roleName records how a role's label was resolved. A name claimed by the
// role's own introduction outranks one inferred from being addressed.
type roleName struct {
	name string
	self bool
}

// Label assigns a speaker label to every segment, preserving order and
// count. The first segment opens the first role's turn; subsequent segments
// join the current turn unless a boundary cue flips to the other role.
// Output is fully determined by the input segments and config.
func Label(segments []transcription.Segment, cfg Config) []LabeledSegment {
	if len(segments) == 0 {
		return nil
	}

	turns := partition(segments, cfg)
	labels := resolveLabels(segments, turns)

	out := make([]LabeledSegment, len(segments))
	for _, t := range turns {
		for i := t.first; i <= t.last; i++ {
			out[i] = LabeledSegment{
				Speaker: labels[t.role],
				Start:   segments[i].Start,
				End:     segments[i].End,
				Text:    segments[i].Text,
			}
		}
	}
	return out
}

// Speakers returns the distinct labels in order of first appearance.
func Speakers(segments []LabeledSegment) []string {
	var speakers []string
	seen := make(map[string]bool, 2)
	for _, seg := range segments {
		if seen[seg.Speaker] {
			continue
		}
		seen[seg.Speaker] = true
		speakers = append(speakers, seg.Speaker)
	}
	return speakers
}

func partition(segments []transcription.Segment, cfg Config) []turn {
	turns := []turn{{role: 0, first: 0, last: 0}}
	for i := 1; i < len(segments); i++ {
		if startsNewTurn(segments[i-1], segments[i], cfg) {
			role := 1 - turns[len(turns)-1].role
			turns = append(turns, turn{role: role, first: i, last: i})
			continue
		}
		turns[len(turns)-1].last = i
	}
	return turns
}

// startsNewTurn reports whether a segment opens a turn for the other party.
// A self-introduction or a greeting addressed at someone marks the start of
// an utterance, and a long silence implies the floor changed hands.
func startsNewTurn(prev, cur transcription.Segment, cfg Config) bool {
	if _, ok := SelfIntroducedName(cur.Text); ok {
		return true
	}
	if _, ok := AddressedName(cur.Text); ok {
		return true
	}
	return cfg.GapSeconds > 0 && cur.Start-prev.End > cfg.GapSeconds
}

// resolveLabels maps the two roles to display labels. Names are resolved
// from dialogue cues first; any role still unnamed gets a synthetic label
// numbered by order of first appearance.
func resolveLabels(segments []transcription.Segment, turns []turn) [2]string {
	var names [2]roleName
	for _, t := range turns {
		for i := t.first; i <= t.last; i++ {
			if name, ok := SelfIntroducedName(segments[i].Text); ok && !names[t.role].self {
				names[t.role] = roleName{name: name, self: true}
			}
			if name, ok := AddressedName(segments[i].Text); ok {
				other := 1 - t.role
				if names[other].name == "" {
					names[other] = roleName{name: name}
				}
			}
		}
	}

	var labels [2]string
	var seen [2]bool
	position := 0
	for _, t := range turns {
		if seen[t.role] {
			continue
		}
		seen[t.role] = true
		position++
		if names[t.role].name != "" {
			labels[t.role] = names[t.role].name
		} else {
			labels[t.role] = fmt.Sprintf("Speaker %d", position)
		}
	}
	return labels
}
