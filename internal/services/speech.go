package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yasharthbajpai/speech-to-text/internal/config"
	"github.com/yasharthbajpai/speech-to-text/internal/metrics"
)

const speechEndpoint = "https://speech.googleapis.com/v1/speech:recognize"

var (
	ErrNoAudioPayload = errors.New("no audio payload provided")
	ErrAudioTooLarge  = errors.New("audio payload exceeds maximum size")
	ErrNoResults      = errors.New("speech service returned no results")
)

// recognitionConfig mirrors the Speech-to-Text v1 RecognitionConfig fields
// this service pins. Uploads are MP3-equivalent per the mobile recorder.
type recognitionConfig struct {
	Encoding                   string `json:"encoding"`
	SampleRateHertz            int    `json:"sampleRateHertz"`
	LanguageCode               string `json:"languageCode"`
	Model                      string `json:"model"`
	AudioChannelCount          int    `json:"audioChannelCount"`
	EnableAutomaticPunctuation bool   `json:"enableAutomaticPunctuation"`
	MaxAlternatives            int    `json:"maxAlternatives"`
	UseEnhanced                bool   `json:"useEnhanced"`
}

type recognizeRequest struct {
	Config recognitionConfig `json:"config"`
	Audio  recognitionAudio  `json:"audio"`
}

type recognitionAudio struct {
	Content string `json:"content"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

type SpeechService struct {
	endpoint      string
	tokens        TokenProvider
	recognition   recognitionConfig
	maxAudioBytes int64
	httpClient    *http.Client
	metrics       *metrics.Metrics
}

func NewSpeechService(cfg config.Config, tokens TokenProvider, m *metrics.Metrics) *SpeechService {
	return &SpeechService{
		endpoint: speechEndpoint,
		tokens:   tokens,
		recognition: recognitionConfig{
			Encoding:                   "MP3",
			SampleRateHertz:            cfg.SampleRateHertz,
			LanguageCode:               cfg.LanguageCode,
			Model:                      "default",
			AudioChannelCount:          cfg.AudioChannelCount,
			EnableAutomaticPunctuation: true,
			MaxAlternatives:            1,
			UseEnhanced:                true,
		},
		maxAudioBytes: cfg.MaxUploadBytes,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		metrics: m,
	}
}

// Transcribe sends the audio for recognition and returns the concatenation of
// the top alternative of every result segment, joined by single spaces in
// segment order. A run with zero result segments is a service failure
// (ErrNoResults); segments whose combined text is empty come back as the
// empty string and are the caller's business-level condition to handle.
func (s *SpeechService) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", ErrNoAudioPayload
	}
	if s.maxAudioBytes > 0 && int64(len(audio)) > s.maxAudioBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrAudioTooLarge, len(audio))
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("authenticate speech request: %w", err)
	}

	payload := recognizeRequest{
		Config: s.recognition,
		Audio:  recognitionAudio{Content: base64.StdEncoding.EncodeToString(audio)},
	}

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return "", fmt.Errorf("encode recognize payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, buf)
	if err != nil {
		return "", fmt.Errorf("create recognize request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	s.metrics.RecordTranscriptionRequest()
	start := time.Now()

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.metrics.RecordTranscriptionFailure(time.Since(start).Seconds())
		return "", fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		s.metrics.RecordTranscriptionFailure(time.Since(start).Seconds())
		return "", s.decodeAPIError(resp)
	}

	var result recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.metrics.RecordTranscriptionFailure(time.Since(start).Seconds())
		return "", fmt.Errorf("decode recognize response: %w", err)
	}

	if len(result.Results) == 0 {
		s.metrics.RecordTranscriptionFailure(time.Since(start).Seconds())
		return "", ErrNoResults
	}

	s.metrics.RecordTranscriptionSuccess(time.Since(start).Seconds())

	parts := make([]string, 0, len(result.Results))
	for _, segment := range result.Results {
		if len(segment.Alternatives) == 0 {
			continue
		}
		parts = append(parts, segment.Alternatives[0].Transcript)
	}

	return strings.Join(parts, " "), nil
}

func (s *SpeechService) decodeAPIError(resp *http.Response) error {
	var apiErr struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}

	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("speech api error: status %d %s: %s", resp.StatusCode, apiErr.Error.Status, apiErr.Error.Message)
	}

	return fmt.Errorf("speech api error: status %d body %s", resp.StatusCode, string(body))
}
