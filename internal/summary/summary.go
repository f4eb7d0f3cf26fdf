// Package summary composes a short extractive digest of a call: who spoke,
// what subjects came up, and which sentences sounded like decisions. It
// quotes the transcript rather than paraphrasing it, so output stays
// deterministic.
package summary

import (
	"regexp"
	"strings"

	"github.com/anubhavkohli2718/call-summarzy/internal/diarize"
)

// Config lists the vocabularies the generator scans for, in priority
// order.
type Config struct {
	// Topics are subject keywords reported in the order listed here.
	Topics []string
	// DecisionPhrases mark sentences worth quoting as agreements.
	DecisionPhrases []string
	// MaxDecisions caps how many sentences are quoted.
	MaxDecisions int
}

// DefaultConfig returns the vocabulary used when no overrides are
// configured.
func DefaultConfig() Config {
	return Config{
		Topics: []string{
			"order", "shipment", "delivery", "refund", "payment",
			"invoice", "account", "contract", "appointment", "meeting",
		},
		DecisionPhrases: []string{"go ahead", "let's", "we'll", "agreed", "confirm"},
		MaxDecisions:    3,
	}
}

type topicPattern struct {
	keyword string
	pattern *regexp.Regexp
}

// Generator scans transcripts with a fixed, precompiled vocabulary.
type Generator struct {
	topics       []topicPattern
	decisions    []*regexp.Regexp
	maxDecisions int
}

// NewGenerator compiles the configured vocabularies for whole word,
// case insensitive matching.
func NewGenerator(cfg Config) *Generator {
	g := &Generator{maxDecisions: cfg.MaxDecisions}
	for _, keyword := range cfg.Topics {
		g.topics = append(g.topics, topicPattern{
			keyword: keyword,
			pattern: wholeWord(keyword),
		})
	}
	for _, phrase := range cfg.DecisionPhrases {
		g.decisions = append(g.decisions, wholeWord(phrase))
	}
	return g
}

func wholeWord(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
}

// Generate builds the summary from up to three clauses: participants,
// topics, and quoted decisions. Clauses with nothing to say are omitted,
// and an empty transcript yields an empty summary.
func (g *Generator) Generate(segments []diarize.LabeledSegment) string {
	if len(segments) == 0 {
		return ""
	}

	var clauses []string
	if c := participantsClause(segments); c != "" {
		clauses = append(clauses, c)
	}

	text := joinedText(segments)
	if c := g.topicsClause(text); c != "" {
		clauses = append(clauses, c)
	}
	if c := g.decisionsClause(text); c != "" {
		clauses = append(clauses, c)
	}
	return strings.Join(clauses, " ")
}

// participantsClause names the parties, preferring resolved names and
// falling back to the synthetic labels when nobody introduced themselves.
func participantsClause(segments []diarize.LabeledSegment) string {
	speakers := diarize.Speakers(segments)
	named := make([]string, 0, len(speakers))
	for _, s := range speakers {
		if !diarize.IsSyntheticLabel(s) {
			named = append(named, s)
		}
	}
	if len(named) == 0 {
		named = speakers
	}

	if len(named) == 1 {
		return "Call with " + named[0] + "."
	}
	return "Call between " + naturalJoin(named) + "."
}

func (g *Generator) topicsClause(text string) string {
	var found []string
	for _, t := range g.topics {
		if t.pattern.MatchString(text) {
			found = append(found, t.keyword)
		}
	}
	if len(found) == 0 {
		return ""
	}
	return "The conversation covered " + naturalJoin(found) + "."
}

// decisionsClause quotes sentences that contain a decision phrase,
// verbatim and deduplicated, capped at the configured maximum.
func (g *Generator) decisionsClause(text string) string {
	var quoted []string
	seen := make(map[string]bool)
	for _, sentence := range splitSentences(text) {
		if len(quoted) == g.maxDecisions {
			break
		}
		if seen[sentence] || !g.isDecision(sentence) {
			continue
		}
		seen[sentence] = true
		quoted = append(quoted, sentence)
	}
	if len(quoted) == 0 {
		return ""
	}
	return "Key agreements: " + strings.Join(quoted, "; ") + "."
}

func (g *Generator) isDecision(sentence string) bool {
	for _, pattern := range g.decisions {
		if pattern.MatchString(sentence) {
			return true
		}
	}
	return false
}

func joinedText(segments []diarize.LabeledSegment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}

func splitSentences(text string) []string {
	var sentences []string
	for _, raw := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if s := strings.TrimSpace(raw); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func naturalJoin(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
