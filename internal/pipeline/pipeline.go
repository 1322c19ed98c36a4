// Package pipeline sequences one transcription request through its stages:
// speech recognition, meeting-data extraction, and normalization. Each run is
// independent; the pipeline holds no per-request state.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yasharthbajpai/speech-to-text/internal/domain"
	"github.com/yasharthbajpai/speech-to-text/internal/metrics"
)

// Client-level conditions. The handler maps these to 400 responses; every
// other error is a pipeline failure and maps to 500.
var (
	ErrNoAudio         = errors.New("no audio file uploaded")
	ErrEmptyTranscript = errors.New("no transcript generated")
)

const (
	StageTranscribing = "transcribing"
	StageExtracting   = "extracting"
	StageNormalizing  = "normalizing"
)

// StageError tags a failure with the stage it happened in. Only
// transcription produces these: extraction absorbs its own failures and
// normalization is pure.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

type Extractor interface {
	Extract(ctx context.Context, transcript string) domain.ExtractedMeetingData
}

type Normalizer interface {
	Normalize(data domain.ExtractedMeetingData) domain.NormalizedResult
}

type Result struct {
	Transcript string
	Normalized domain.NormalizedResult
}

type Pipeline struct {
	transcriber Transcriber
	extractor   Extractor
	normalizer  Normalizer
	metrics     *metrics.Metrics
}

func New(transcriber Transcriber, extractor Extractor, normalizer Normalizer, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		transcriber: transcriber,
		extractor:   extractor,
		normalizer:  normalizer,
		metrics:     m,
	}
}

// Run executes the stages in order. Transcription failures are fatal for the
// request; extraction never fails outward, so a run that produced a
// non-empty transcript always ends in a fully-shaped result.
func (p *Pipeline) Run(ctx context.Context, audio []byte) (Result, error) {
	if len(audio) == 0 {
		p.metrics.RecordPipelineOutcome("client_error")
		return Result{}, ErrNoAudio
	}

	transcript, err := p.transcriber.Transcribe(ctx, audio)
	if err != nil {
		p.metrics.RecordPipelineOutcome("server_error")
		return Result{}, &StageError{Stage: StageTranscribing, Err: err}
	}

	if strings.TrimSpace(transcript) == "" {
		p.metrics.RecordPipelineOutcome("client_error")
		return Result{}, ErrEmptyTranscript
	}

	data := p.extractor.Extract(ctx, transcript)
	normalized := p.normalizer.Normalize(data)

	p.metrics.RecordPipelineOutcome("success")
	return Result{Transcript: transcript, Normalized: normalized}, nil
}
