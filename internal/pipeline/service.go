package pipeline

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/anubhavkohli2718/call-summarzy/internal/diarize"
	"github.com/anubhavkohli2718/call-summarzy/internal/extraction"
	"github.com/anubhavkohli2718/call-summarzy/internal/summary"
	"github.com/anubhavkohli2718/call-summarzy/internal/transcription"
)

type Transcriber interface {
	Transcribe(ctx context.Context, file io.Reader, fileName, language string) (transcription.Transcript, error)
}

// Service runs the full call analysis: transcription through the upstream
// model, then speaker attribution, action item extraction, and summary
// generation over the returned segments.
type Service struct {
	transcriber Transcriber
	diarizeCfg  diarize.Config
	extractor   *extraction.Extractor
	summarizer  *summary.Generator
}

type ProcessInput struct {
	File     io.Reader
	FileName string
	FileSize int64
	// Language is the requested transcription language, empty for
	// auto detection.
	Language string
}

type Timings struct {
	Transcription time.Duration
	Analysis      time.Duration
	Total         time.Duration
}

// Metadata describes the processed call for the response envelope.
type Metadata struct {
	Filename           string
	FileSize           int64
	Duration           float64
	SpeakerDiarization bool
	TotalSpeakers      int
	TotalActionItems   int
}

type ProcessResult struct {
	Transcription     string
	LanguageDetected  string
	LanguageRequested string
	Summary           string
	ActionItems       []extraction.ActionItem
	Segments          []diarize.LabeledSegment
	Speakers          []string
	Metadata          Metadata
	Timings           Timings
}

func New(transcriber Transcriber, diarizeCfg diarize.Config, extractor *extraction.Extractor, summarizer *summary.Generator) *Service {
	return &Service{
		transcriber: transcriber,
		diarizeCfg:  diarizeCfg,
		extractor:   extractor,
		summarizer:  summarizer,
	}
}

func (s *Service) Process(ctx context.Context, in ProcessInput) (ProcessResult, error) {
	started := time.Now()
	transcriptionStarted := time.Now()

	transcript, err := s.transcriber.Transcribe(ctx, in.File, in.FileName, in.Language)
	transcriptionDuration := time.Since(transcriptionStarted)
	if err != nil {
		return ProcessResult{}, err
	}

	analysisStarted := time.Now()
	segments := diarize.Label(transcript.Segments, s.diarizeCfg)
	items := s.extractor.ActionItems(segments)
	digest := s.summarizer.Generate(segments)
	analysisDuration := time.Since(analysisStarted)

	speakers := diarize.Speakers(segments)
	result := ProcessResult{
		Transcription:     joinedText(segments),
		LanguageDetected:  languageOrUnknown(transcript.Language),
		LanguageRequested: languageOrAuto(in.Language),
		Summary:           digest,
		ActionItems:       items,
		Segments:          segments,
		Speakers:          speakers,
		Metadata: Metadata{
			Filename:           in.FileName,
			FileSize:           in.FileSize,
			Duration:           callDuration(segments),
			SpeakerDiarization: false,
			TotalSpeakers:      len(speakers),
			TotalActionItems:   len(items),
		},
		Timings: Timings{
			Transcription: transcriptionDuration,
			Analysis:      analysisDuration,
			Total:         time.Since(started),
		},
	}
	return result, nil
}

// joinedText rebuilds the flat transcription from the segment texts so the
// two response views of the transcript always agree.
func joinedText(segments []diarize.LabeledSegment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}

// callDuration is the end time of the last segment, zero for an empty
// transcript.
func callDuration(segments []diarize.LabeledSegment) float64 {
	if len(segments) == 0 {
		return 0
	}
	return segments[len(segments)-1].End
}

func languageOrUnknown(language string) string {
	if language == "" {
		return "unknown"
	}
	return language
}

func languageOrAuto(language string) string {
	if language == "" {
		return "auto"
	}
	return language
}
