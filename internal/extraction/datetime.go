package extraction

import "regexp"

// Date and time mentions are reported verbatim so the caller sees the
// exact phrase from the conversation. Patterns are tried in order and the
// first pattern that matches anywhere in the text supplies the value.
var (
	datePatterns = []*regexp.Regexp{
		// Day counts, numeric or spelled, with an optional range:
		// "three to four days", "5 business days", "a week or two" is out.
		regexp.MustCompile(`(?i)\b(?:\d+|one|two|three|four|five|six|seven|eight|nine|ten)(?:\s+(?:to|or)\s+(?:\d+|one|two|three|four|five|six|seven|eight|nine|ten))?\s+(?:business\s+)?days?\b`),
		regexp.MustCompile(`(?i)\b(?:next\s+|this\s+)?(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
		regexp.MustCompile(`(?i)\bend of (?:the\s+)?(?:day|week|month|quarter|year)\b`),
		regexp.MustCompile(`(?i)\b(?:tomorrow|today|tonight)\b`),
		regexp.MustCompile(`(?i)\bnext (?:week|month)\b`),
	}

	timePattern = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}(?:\s*[ap]\.?m\.?)?\b`)
)

// MatchDate returns the first date phrase mentioned in text.
func MatchDate(text string) (string, bool) {
	for _, pattern := range datePatterns {
		if m := pattern.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}

// MatchTime returns the first clock time mentioned in text.
func MatchTime(text string) (string, bool) {
	if m := timePattern.FindString(text); m != "" {
		return m, true
	}
	return "", false
}
