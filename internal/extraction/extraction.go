// Package extraction pulls action items out of a labeled call transcript.
// Detection is phrase driven: a configured trigger phrase marks a
// commitment, the clause after it becomes the description, and date or
// time mentions in the same utterance are carried along.
package extraction

import (
	"regexp"
	"strings"

	"github.com/anubhavkohli2718/call-summarzy/internal/diarize"
)

// Config lists the trigger phrases scanned for, in priority order.
type Config struct {
	// CommitmentTriggers are first person phrases. The speaker of the
	// segment is the assignee.
	CommitmentTriggers []string
	// DelegationTriggers are second person phrases. The other party on
	// the call is the assignee.
	DelegationTriggers []string
}

// DefaultConfig returns the trigger phrases used when no overrides are
// configured.
func DefaultConfig() Config {
	return Config{
		CommitmentTriggers: []string{"i will", "i'll", "we will", "i need to", "i'm going to", "let me"},
		DelegationTriggers: []string{"can you", "could you", "you should", "you need to", "please"},
	}
}

// ActionItem is a commitment voiced on the call. Date and Time hold the
// phrase exactly as spoken and are nil when nothing was mentioned.
type ActionItem struct {
	Assignee    string
	Description string
	Speaker     string
	Timestamp   float64
	Date        *string
	Time        *string
}

type trigger struct {
	phrase     string
	pattern    *regexp.Regexp
	delegation bool
}

// Extractor scans transcripts with a fixed, precompiled trigger set.
type Extractor struct {
	triggers []trigger
}

// NewExtractor compiles the configured trigger phrases. Commitment
// triggers are tried before delegation triggers, each list in its own
// order.
func NewExtractor(cfg Config) *Extractor {
	ex := &Extractor{}
	for _, phrase := range cfg.CommitmentTriggers {
		ex.triggers = append(ex.triggers, newTrigger(phrase, false))
	}
	for _, phrase := range cfg.DelegationTriggers {
		ex.triggers = append(ex.triggers, newTrigger(phrase, true))
	}
	return ex
}

func newTrigger(phrase string, delegation bool) trigger {
	return trigger{
		phrase:     phrase,
		pattern:    regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`),
		delegation: delegation,
	}
}

// ActionItems returns at most one item per segment, in segment order. The
// first trigger that matches a segment decides the item, so extraction is
// deterministic for a given transcript and config.
func (e *Extractor) ActionItems(segments []diarize.LabeledSegment) []ActionItem {
	speakers := diarize.Speakers(segments)
	var items []ActionItem
	for _, seg := range segments {
		if item, ok := e.fromSegment(seg, speakers); ok {
			items = append(items, item)
		}
	}
	return items
}

func (e *Extractor) fromSegment(seg diarize.LabeledSegment, speakers []string) (ActionItem, bool) {
	for _, tr := range e.triggers {
		loc := tr.pattern.FindStringIndex(seg.Text)
		if loc == nil {
			continue
		}
		desc := clauseAfter(seg.Text, loc[1])
		if desc == "" {
			return ActionItem{}, false
		}

		assignee := seg.Speaker
		if tr.delegation {
			assignee = otherParty(seg.Speaker, speakers)
		}
		item := ActionItem{
			Assignee:    assignee,
			Description: desc,
			Speaker:     seg.Speaker,
			Timestamp:   seg.Start,
		}
		if date, ok := MatchDate(seg.Text); ok {
			item.Date = &date
		}
		if clock, ok := MatchTime(seg.Text); ok {
			item.Time = &clock
		}
		return item, true
	}
	return ActionItem{}, false
}

// clauseAfter returns the text following a trigger match, cut at the end
// of the sentence and stripped of leading filler punctuation.
func clauseAfter(text string, from int) string {
	rest := text[from:]
	if i := strings.IndexAny(rest, ".!?"); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(strings.TrimLeft(rest, ",;: "))
}

// otherParty resolves the assignee for a delegation. With the expected two
// parties this is whoever is not speaking. A lone speaker stays the
// assignee for lack of anyone else.
func otherParty(speaker string, speakers []string) string {
	for _, s := range speakers {
		if s != speaker {
			return s
		}
	}
	return speaker
}
