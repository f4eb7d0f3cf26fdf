package diarize

import "regexp"

// Name extraction works on textual cues only. A candidate name must be a
// single capitalized token, which filters out ordinary words without a
// stopword list: mid-sentence common words are lowercase.
var (
	selfIntroPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?i:this is)\s+([A-Z][a-z]+)\b`),
		regexp.MustCompile(`\b(?i:my name is)\s+([A-Z][a-z]+)\b`),
	}

	// Vocative greeting names the party being spoken to, not the speaker.
	vocativePattern = regexp.MustCompile(`\b(?i:hi|hello|hey)\b,?\s+([A-Z][a-z]+)\b`)

	syntheticLabelPattern = regexp.MustCompile(`^Speaker \d+$`)
)

// SelfIntroducedName returns the first name a segment's speaker claims for
// themselves ("this is Anthony", "my name is Gina").
func SelfIntroducedName(text string) (string, bool) {
	for _, pattern := range selfIntroPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// AddressedName returns the first name the segment's speaker uses to address
// the other party ("Hi Anthony"). The name identifies the listener.
func AddressedName(text string) (string, bool) {
	if m := vocativePattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// IsSyntheticLabel reports whether a speaker label was synthesized
// ("Speaker 1", "Speaker 2", ...) rather than resolved to a real name.
func IsSyntheticLabel(label string) bool {
	return syntheticLabelPattern.MatchString(label)
}
