package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yasharthbajpai/speech-to-text/internal/config"
	"github.com/yasharthbajpai/speech-to-text/internal/domain"
	"github.com/yasharthbajpai/speech-to-text/internal/metrics"
)

const extractionSystemPrompt = "You are a JSON formatter. Only respond with valid JSON objects."

const extractionPromptTemplate = `
Analyze this transcript and return a JSON object with exactly this structure:
{
    "tasks": [
        {
            "task": "description of task",
            "assignee": "name of person",
            "deadline": "date if mentioned"
        }
    ],
    "meeting": {
        "date": "date if mentioned",
        "time": "time if mentioned",
        "participants": ["list of names mentioned"]
    },
    "key_points": ["list of main discussion points"],
    "decisions": ["list of decisions made"],
    "next_steps": ["list of follow-up actions"]
}

Transcript: %s

Respond only with the JSON object, no additional text.`

// ExtractionService asks the Perplexity chat-completions API to pull
// structured meeting data out of a transcript. Extraction is best-effort
// enrichment: every failure mode collapses to the empty default so a
// transcript alone still reaches the caller.
type ExtractionService struct {
	client  *openai.Client
	model   string
	metrics *metrics.Metrics
}

func NewExtractionService(cfg config.Config, m *metrics.Metrics) *ExtractionService {
	clientCfg := openai.DefaultConfig(cfg.PerplexityAPIKey)
	clientCfg.BaseURL = cfg.PerplexityBaseURL

	return &ExtractionService{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.PerplexityModel,
		metrics: m,
	}
}

func (s *ExtractionService) Extract(ctx context.Context, transcript string) domain.ExtractedMeetingData {
	s.metrics.RecordExtractionRequest()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(extractionPromptTemplate, transcript)},
		},
		Temperature: 0.1,
		MaxTokens:   10000,
	})
	if err != nil {
		log.Printf("extraction request failed: %v", err)
		s.metrics.RecordExtractionFallback()
		return domain.EmptyExtractedMeetingData()
	}

	if len(resp.Choices) == 0 {
		log.Printf("extraction returned no choices")
		s.metrics.RecordExtractionFallback()
		return domain.EmptyExtractedMeetingData()
	}

	data, err := parseExtraction(resp.Choices[0].Message.Content)
	if err != nil {
		log.Printf("extraction parse failed: %v", err)
		s.metrics.RecordExtractionFallback()
		return domain.EmptyExtractedMeetingData()
	}

	return data
}

// parseExtraction pulls the largest brace-delimited substring out of the
// model response and parses it as JSON. Model replies often wrap the object
// in prose or markdown fences; greedy first-{-to-last-} matching tolerates
// that noise. Known limitation: unrelated braces around the object widen the
// match and fail the parse; kept as-is for behavioral compatibility.
func parseExtraction(content string) (domain.ExtractedMeetingData, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end < start {
		return domain.ExtractedMeetingData{}, errors.New("no JSON object found in response")
	}

	var data domain.ExtractedMeetingData
	if err := json.Unmarshal([]byte(content[start:end+1]), &data); err != nil {
		return domain.ExtractedMeetingData{}, fmt.Errorf("parse extracted JSON: %w", err)
	}

	data.EnsureDefaults()
	return data, nil
}
