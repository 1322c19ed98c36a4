package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/yasharthbajpai/speech-to-text/internal/domain"
)

func fixedClockNormalizer() *Normalizer {
	return &Normalizer{now: func() time.Time {
		return time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC)
	}}
}

func TestNormalizeAlwaysFullyShaped(t *testing.T) {
	result := fixedClockNormalizer().Normalize(domain.EmptyExtractedMeetingData())

	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"calendar_event", "todo_items", "meeting_summary"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("expected key %q in normalized output", key)
		}
	}

	if string(body["calendar_event"]) != "null" {
		t.Fatalf("expected null calendar_event, got %s", body["calendar_event"])
	}
	if string(body["todo_items"]) != "[]" {
		t.Fatalf("expected empty todo_items array, got %s", body["todo_items"])
	}
}

func TestNormalizeCalendarEventRequiresDate(t *testing.T) {
	data := domain.EmptyExtractedMeetingData()
	data.Meeting.Time = "10:00"
	data.Meeting.Participants = []string{"Ana"}

	result := fixedClockNormalizer().Normalize(data)
	if result.CalendarEvent != nil {
		t.Fatalf("expected nil calendar event without a date, got %+v", result.CalendarEvent)
	}

	data.Meeting.Date = "2025-06-06"
	result = fixedClockNormalizer().Normalize(data)
	if result.CalendarEvent == nil {
		t.Fatal("expected calendar event when a date is present")
	}
	if result.CalendarEvent.Title != "Meeting" {
		t.Fatalf("expected fixed title, got %q", result.CalendarEvent.Title)
	}
	if result.CalendarEvent.Time != "10:00" || len(result.CalendarEvent.Participants) != 1 {
		t.Fatalf("unexpected calendar event: %+v", result.CalendarEvent)
	}
}

func TestNormalizeFillsTaskDefaults(t *testing.T) {
	data := domain.EmptyExtractedMeetingData()
	data.Tasks = []domain.ExtractedTask{
		{Task: "Write minutes"},
		{Task: "Ship release", Assignee: "Ana", Deadline: "Friday"},
	}

	result := fixedClockNormalizer().Normalize(data)
	if len(result.TodoItems) != 2 {
		t.Fatalf("expected 2 todo items, got %d", len(result.TodoItems))
	}

	bare := result.TodoItems[0]
	if bare.Assignee != "Unassigned" || bare.Deadline != "No deadline" {
		t.Fatalf("expected defaults to be filled, got %+v", bare)
	}

	full := result.TodoItems[1]
	if full.Assignee != "Ana" || full.Deadline != "Friday" {
		t.Fatalf("expected provided values to be kept, got %+v", full)
	}

	for _, item := range result.TodoItems {
		if item.Status != "pending" {
			t.Fatalf("expected pending status, got %q", item.Status)
		}
	}
}

func TestNormalizeSummaryPassthroughAndTimestamp(t *testing.T) {
	data := domain.EmptyExtractedMeetingData()
	data.KeyPoints = []string{"launch plan"}
	data.Decisions = []string{"go for it"}
	data.NextSteps = []string{"announce"}

	result := fixedClockNormalizer().Normalize(data)
	summary := result.MeetingSummary

	if len(summary.KeyPoints) != 1 || summary.KeyPoints[0] != "launch plan" {
		t.Fatalf("unexpected key points: %v", summary.KeyPoints)
	}
	if len(summary.Decisions) != 1 || len(summary.NextSteps) != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.GeneratedAt != "2025-06-06T12:00:00Z" {
		t.Fatalf("unexpected generated_at: %q", summary.GeneratedAt)
	}
}

func TestNormalizeAfterParseKeepsAllKeys(t *testing.T) {
	data, err := parseExtraction(`{"tasks":[{"task":"Prepare deck"}],"meeting":{"date":"Monday"}}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	result := fixedClockNormalizer().Normalize(data)
	if result.CalendarEvent == nil {
		t.Fatal("expected calendar event")
	}
	if result.MeetingSummary.KeyPoints == nil || result.MeetingSummary.Decisions == nil || result.MeetingSummary.NextSteps == nil {
		t.Fatal("expected non-nil summary collections")
	}
	if result.TodoItems == nil {
		t.Fatal("expected non-nil todo items")
	}
}
