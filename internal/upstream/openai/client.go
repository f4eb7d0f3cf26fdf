package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

type ObserverFunc func(endpoint string, status int, duration time.Duration)

type Option func(*Client)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	observer   ObserverFunc
}

type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream request failed with status %d", e.StatusCode)
}

// Segment is one timestamped span of the upstream verbose_json response.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

type Transcription struct {
	Text     string
	Language string
	Duration float64
	Segments []Segment
}

func WithObserver(observer ObserverFunc) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

func New(baseURL, apiKey string, httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Transcribe posts the audio file and requests verbose_json so the response
// carries per-segment timestamps. Language is optional; empty means the
// upstream model auto-detects it.
func (c *Client) Transcribe(ctx context.Context, file io.Reader, fileName, model, language string) (Transcription, error) {
	started := time.Now()
	statusCode := 0
	defer func() { c.observe("audio_transcriptions", statusCode, time.Since(started)) }()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("model", model); err != nil {
		return Transcription{}, err
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return Transcription{}, err
	}
	if language != "" {
		if err := writer.WriteField("language", language); err != nil {
			return Transcription{}, err
		}
	}
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return Transcription{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return Transcription{}, err
	}
	if err := writer.Close(); err != nil {
		return Transcription{}, err
	}

	url := c.baseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body.Bytes()))
	if err != nil {
		return Transcription{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Transcription{}, err
	}
	defer resp.Body.Close()
	statusCode = resp.StatusCode

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Transcription{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return Transcription{}, &Error{StatusCode: resp.StatusCode, Body: truncateBody(string(respBody))}
	}

	return parseTranscription(respBody)
}

func (c *Client) CheckModels(ctx context.Context) error {
	started := time.Now()
	statusCode := 0
	defer func() { c.observe("models", statusCode, time.Since(started)) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	statusCode = resp.StatusCode

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &Error{StatusCode: resp.StatusCode, Body: truncateBody(string(body))}
	}
	return nil
}

func (c *Client) observe(endpoint string, status int, duration time.Duration) {
	if c.observer != nil {
		c.observer(endpoint, status, duration)
	}
}

func parseTranscription(data []byte) (Transcription, error) {
	var parsed struct {
		Text     string  `json:"text"`
		Language string  `json:"language"`
		Duration float64 `json:"duration"`
		Segments []struct {
			Start float64 `json:"start"`
			End   float64 `json:"end"`
			Text  string  `json:"text"`
		} `json:"segments"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil {
		tr := Transcription{
			Text:     strings.TrimSpace(parsed.Text),
			Language: strings.TrimSpace(parsed.Language),
			Duration: parsed.Duration,
		}
		for _, seg := range parsed.Segments {
			text := strings.TrimSpace(seg.Text)
			if text == "" {
				continue
			}
			tr.Segments = append(tr.Segments, Segment{Start: seg.Start, End: seg.End, Text: text})
		}
		// Some servers ignore response_format and return {"text"} only.
		if len(tr.Segments) == 0 && tr.Text != "" {
			tr.Segments = []Segment{{Start: 0, End: parsed.Duration, Text: tr.Text}}
		}
		if tr.Duration == 0 && len(tr.Segments) > 0 {
			tr.Duration = tr.Segments[len(tr.Segments)-1].End
		}
		return tr, nil
	}

	plainText := strings.TrimSpace(joinLines(string(data)))
	if plainText == "" {
		return Transcription{}, fmt.Errorf("invalid transcription response")
	}
	return Transcription{
		Text:     plainText,
		Segments: []Segment{{Text: plainText}},
	}, nil
}

func joinLines(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	return strings.Join(parts, " ")
}

func truncateBody(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= 4096 {
		return s
	}
	return s[:4096] + "..."
}
