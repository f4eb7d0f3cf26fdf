package transcription

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/anubhavkohli2718/call-summarzy/internal/upstream/openai"
)

// Segment is one timestamped span of transcribed speech. Ordering within a
// Transcript is the segment's ordinal; segments are never reordered or
// mutated after the service returns them.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Transcript is the full output of one transcription call.
type Transcript struct {
	Text     string
	Language string
	Duration float64
	Segments []Segment
}

type Client interface {
	Transcribe(ctx context.Context, file io.Reader, fileName, model, language string) (openai.Transcription, error)
}

type Service struct {
	client       Client
	defaultModel string
	timeout      time.Duration
}

func New(client Client, defaultModel string, timeout time.Duration) *Service {
	return &Service{
		client:       client,
		defaultModel: strings.TrimSpace(defaultModel),
		timeout:      timeout,
	}
}

func (s *Service) Transcribe(ctx context.Context, file io.Reader, fileName, language string) (Transcript, error) {
	if fileName == "" {
		fileName = "audio.wav"
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	upstream, err := s.client.Transcribe(ctx, file, fileName, s.defaultModel, strings.TrimSpace(language))
	if err != nil {
		return Transcript{}, err
	}

	tr := Transcript{
		Text:     strings.TrimSpace(upstream.Text),
		Language: strings.TrimSpace(upstream.Language),
		Duration: upstream.Duration,
	}
	for _, seg := range upstream.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		tr.Segments = append(tr.Segments, Segment{Start: seg.Start, End: seg.End, Text: text})
	}
	if tr.Text == "" && len(tr.Segments) > 0 {
		texts := make([]string, 0, len(tr.Segments))
		for _, seg := range tr.Segments {
			texts = append(texts, seg.Text)
		}
		tr.Text = strings.Join(texts, " ")
	}
	return tr, nil
}
