package model

type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"request_id,omitempty"`
}

type RootResponse struct {
	Message            string   `json:"message"`
	Status             string   `json:"status"`
	SupportedLanguages []string `json:"supported_languages"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// ActionItem is a commitment heard on the call. Date and Time carry the
// phrase as spoken and serialize to null when absent.
type ActionItem struct {
	Assignee    string  `json:"assignee"`
	Description string  `json:"description"`
	Speaker     string  `json:"speaker"`
	Timestamp   float64 `json:"timestamp"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
}

// SpeakerSegment is the speaker view of a transcript segment.
type SpeakerSegment struct {
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// TranscriptSegment is the positional view of a transcript segment. ID is
// the zero based ordinal within the call.
type TranscriptSegment struct {
	ID      int     `json:"id"`
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
}

type TranscriptionMetadata struct {
	Filename           string  `json:"filename"`
	FileSize           int64   `json:"file_size"`
	Duration           float64 `json:"duration"`
	SpeakerDiarization bool    `json:"speaker_diarization"`
	TotalSpeakers      int     `json:"total_speakers"`
	TotalActionItems   int     `json:"total_action_items"`
}

type TranscribeResponse struct {
	Success                   bool                  `json:"success"`
	Transcription             string                `json:"transcription"`
	LanguageDetected          string                `json:"language_detected"`
	LanguageRequested         string                `json:"language_requested"`
	Summary                   string                `json:"summary"`
	ActionItems               []ActionItem          `json:"action_items"`
	TranscriptionWithSpeakers []SpeakerSegment      `json:"transcription_with_speakers"`
	Segments                  []TranscriptSegment   `json:"segments"`
	Metadata                  TranscriptionMetadata `json:"metadata"`
}
