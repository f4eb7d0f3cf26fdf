package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/anubhavkohli2718/call-summarzy/internal/diarize"
	"github.com/anubhavkohli2718/call-summarzy/internal/extraction"
	"github.com/anubhavkohli2718/call-summarzy/internal/summary"
	"github.com/anubhavkohli2718/call-summarzy/internal/transcription"
)

type fakeTranscriber struct {
	transcript transcription.Transcript
	err        error
	fileName   string
	language   string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, file io.Reader, fileName, language string) (transcription.Transcript, error) {
	_, _ = io.ReadAll(file)
	f.fileName = fileName
	f.language = language
	return f.transcript, f.err
}

func newService(transcriber Transcriber) *Service {
	return New(
		transcriber,
		diarize.DefaultConfig(),
		extraction.NewExtractor(extraction.DefaultConfig()),
		summary.NewGenerator(summary.DefaultConfig()),
	)
}

func sampleCall() transcription.Transcript {
	return transcription.Transcript{
		Language: "en",
		Duration: 24.4,
		Segments: []transcription.Segment{
			{Start: 0, End: 3.2, Text: "Thank you for calling TechCorp. This is Fania. How can I help you today?"},
			{Start: 3.6, End: 7.4, Text: "Hi Tania, this is Anthony. I'm calling about my order."},
			{Start: 9.0, End: 12.5, Text: "I'm sorry to hear that. Can you confirm your address for me?"},
			{Start: 14.2, End: 16.0, Text: "Sure, it's 42 Elm Street."},
			{Start: 17.8, End: 21.0, Text: "Thanks. You should be receiving the replacement in three to four days."},
			{Start: 22.8, End: 24.4, Text: "Great, I will keep an eye out."},
		},
	}
}

func TestProcessAnalyzesCall(t *testing.T) {
	svc := newService(&fakeTranscriber{transcript: sampleCall()})

	res, err := svc.Process(context.Background(), ProcessInput{
		File:     strings.NewReader("audio"),
		FileName: "call.mp3",
		FileSize: 2048,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(res.Segments) != 6 {
		t.Fatalf("expected 6 labeled segments, got %d", len(res.Segments))
	}
	wantLabels := []string{"Fania", "Anthony", "Fania", "Anthony", "Fania", "Anthony"}
	for i, seg := range res.Segments {
		if seg.Speaker != wantLabels[i] {
			t.Errorf("segment %d: expected speaker %q, got %q", i, wantLabels[i], seg.Speaker)
		}
	}

	if !strings.HasPrefix(res.Transcription, "Thank you for calling TechCorp.") ||
		!strings.HasSuffix(res.Transcription, "keep an eye out.") {
		t.Errorf("unexpected joined transcription %q", res.Transcription)
	}

	if len(res.ActionItems) != 3 {
		t.Fatalf("expected 3 action items, got %d: %+v", len(res.ActionItems), res.ActionItems)
	}
	shipping := res.ActionItems[1]
	if shipping.Assignee != "Anthony" || shipping.Speaker != "Fania" {
		t.Errorf("expected delegation to Anthony by Fania, got %+v", shipping)
	}
	if shipping.Date == nil || *shipping.Date != "three to four days" {
		t.Errorf("expected date %q, got %v", "three to four days", shipping.Date)
	}

	if !strings.Contains(res.Summary, "Call between Fania and Anthony.") {
		t.Errorf("unexpected summary %q", res.Summary)
	}

	md := res.Metadata
	if md.Filename != "call.mp3" || md.FileSize != 2048 {
		t.Errorf("unexpected file metadata: %+v", md)
	}
	if md.Duration != 24.4 {
		t.Errorf("expected duration 24.4, got %v", md.Duration)
	}
	if md.SpeakerDiarization {
		t.Error("speaker diarization must be reported as unavailable")
	}
	if md.TotalSpeakers != 2 || md.TotalActionItems != 3 {
		t.Errorf("unexpected totals: %+v", md)
	}

	if res.LanguageDetected != "en" || res.LanguageRequested != "auto" {
		t.Errorf("unexpected languages: %q / %q", res.LanguageDetected, res.LanguageRequested)
	}
}

func TestProcessForwardsLanguageAndFileName(t *testing.T) {
	transcriber := &fakeTranscriber{transcript: sampleCall()}
	svc := newService(transcriber)

	res, err := svc.Process(context.Background(), ProcessInput{
		File:     strings.NewReader("audio"),
		FileName: "soporte.wav",
		Language: "es",
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if transcriber.fileName != "soporte.wav" {
		t.Errorf("expected file name to reach the transcriber, got %q", transcriber.fileName)
	}
	if transcriber.language != "es" {
		t.Errorf("expected language to reach the transcriber, got %q", transcriber.language)
	}
	if res.LanguageRequested != "es" {
		t.Errorf("expected requested language es, got %q", res.LanguageRequested)
	}
}

func TestProcessPropagatesTranscriberError(t *testing.T) {
	wantErr := errors.New("upstream unavailable")
	svc := newService(&fakeTranscriber{err: wantErr})

	_, err := svc.Process(context.Background(), ProcessInput{
		File:     strings.NewReader("audio"),
		FileName: "call.wav",
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected transcriber error, got %v", err)
	}
}

func TestProcessEmptyTranscript(t *testing.T) {
	svc := newService(&fakeTranscriber{})

	res, err := svc.Process(context.Background(), ProcessInput{
		File:     strings.NewReader("audio"),
		FileName: "silence.wav",
		FileSize: 64,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Transcription != "" || res.Summary != "" {
		t.Errorf("expected empty transcription and summary, got %q / %q", res.Transcription, res.Summary)
	}
	if len(res.ActionItems) != 0 || len(res.Segments) != 0 {
		t.Errorf("expected no items or segments, got %+v / %+v", res.ActionItems, res.Segments)
	}
	if res.Metadata.Duration != 0 || res.Metadata.TotalSpeakers != 0 || res.Metadata.TotalActionItems != 0 {
		t.Errorf("expected zeroed metadata, got %+v", res.Metadata)
	}
	if res.LanguageDetected != "unknown" {
		t.Errorf("expected unknown language, got %q", res.LanguageDetected)
	}
}
