package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/yasharthbajpai/speech-to-text/internal/config"
	"github.com/yasharthbajpai/speech-to-text/internal/domain"
)

func TestParseExtractionGreedyBraces(t *testing.T) {
	data, err := parseExtraction(`Here is the result: {"tasks":[]} Thanks!`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(data.Tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(data.Tasks))
	}
	if data.Tasks == nil || data.KeyPoints == nil || data.Decisions == nil || data.NextSteps == nil {
		t.Fatal("expected all collections to be non-nil after parsing")
	}
}

func TestParseExtractionIsIdempotent(t *testing.T) {
	content := `{"tasks":[{"task":"Ship release","assignee":"Ana","deadline":"Friday"}],"meeting":{"date":"2025-06-06","time":"10:00","participants":["Ana","Bo"]},"key_points":["launch"],"decisions":["go"],"next_steps":["announce"]}`

	first, err := parseExtraction(content)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := parseExtraction(content)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parsing is not idempotent: %+v vs %+v", first, second)
	}
}

func TestParseExtractionRejectsBracelessText(t *testing.T) {
	if _, err := parseExtraction("no json here, sorry"); err == nil {
		t.Fatal("expected error for response without braces")
	}
}

func TestParseExtractionRejectsMalformedJSON(t *testing.T) {
	if _, err := parseExtraction(`{"tasks": [unterminated`); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestParseExtractionFillsMissingSubstructures(t *testing.T) {
	data, err := parseExtraction(`{"key_points":["only this"]}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if data.Tasks == nil || data.Decisions == nil || data.NextSteps == nil || data.Meeting.Participants == nil {
		t.Fatal("expected missing substructures to default to empty collections")
	}
	if len(data.KeyPoints) != 1 || data.KeyPoints[0] != "only this" {
		t.Fatalf("unexpected key points: %v", data.KeyPoints)
	}
}

func newTestExtractionService(baseURL string) *ExtractionService {
	cfg := config.Config{
		PerplexityAPIKey:  "test-key",
		PerplexityBaseURL: baseURL,
		PerplexityModel:   "sonar-pro",
	}
	return NewExtractionService(cfg, nil)
}

func TestExtractParsesProseWrappedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Sure! {\"tasks\":[{\"task\":\"Book room\",\"assignee\":\"Sam\"}],\"meeting\":{\"date\":\"Friday\"}} Hope that helps."}}]}`))
	}))
	defer server.Close()

	svc := newTestExtractionService(server.URL)

	data := svc.Extract(context.Background(), "Hello team let's meet Friday")
	if len(data.Tasks) != 1 || data.Tasks[0].Task != "Book room" {
		t.Fatalf("unexpected tasks: %+v", data.Tasks)
	}
	if data.Meeting.Date != "Friday" {
		t.Fatalf("unexpected meeting date: %q", data.Meeting.Date)
	}
}

func TestExtractFallsBackWhenServiceUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	svc := newTestExtractionService(server.URL)

	data := svc.Extract(context.Background(), "Hello team")
	if !reflect.DeepEqual(data, domain.EmptyExtractedMeetingData()) {
		t.Fatalf("expected empty default, got %+v", data)
	}
}

func TestExtractFallsBackOnBracelessResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"I could not find anything."}}]}`))
	}))
	defer server.Close()

	svc := newTestExtractionService(server.URL)

	data := svc.Extract(context.Background(), "silence")
	if !reflect.DeepEqual(data, domain.EmptyExtractedMeetingData()) {
		t.Fatalf("expected empty default, got %+v", data)
	}
}
