package services

import (
	"time"

	"github.com/yasharthbajpai/speech-to-text/internal/domain"
)

const calendarEventTitle = "Meeting"

// Normalizer reshapes extracted meeting data into the fixed response schema.
// Pure transformation, no I/O; the output is always fully formed regardless
// of how degenerate the extraction result was.
type Normalizer struct {
	now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

func (n *Normalizer) Normalize(data domain.ExtractedMeetingData) domain.NormalizedResult {
	result := domain.NormalizedResult{
		TodoItems: make([]domain.TodoItem, 0, len(data.Tasks)),
		MeetingSummary: domain.MeetingSummary{
			KeyPoints:   data.KeyPoints,
			Decisions:   data.Decisions,
			NextSteps:   data.NextSteps,
			GeneratedAt: n.now().UTC().Format(time.RFC3339),
		},
	}

	if result.MeetingSummary.KeyPoints == nil {
		result.MeetingSummary.KeyPoints = []string{}
	}
	if result.MeetingSummary.Decisions == nil {
		result.MeetingSummary.Decisions = []string{}
	}
	if result.MeetingSummary.NextSteps == nil {
		result.MeetingSummary.NextSteps = []string{}
	}

	if data.Meeting.Date != "" {
		participants := data.Meeting.Participants
		if participants == nil {
			participants = []string{}
		}
		result.CalendarEvent = &domain.CalendarEvent{
			Title:        calendarEventTitle,
			Date:         data.Meeting.Date,
			Time:         data.Meeting.Time,
			Participants: participants,
		}
	}

	for _, task := range data.Tasks {
		item := domain.TodoItem{
			Task:     task.Task,
			Assignee: task.Assignee,
			Deadline: task.Deadline,
			Status:   domain.TodoStatusPending,
		}
		if item.Assignee == "" {
			item.Assignee = "Unassigned"
		}
		if item.Deadline == "" {
			item.Deadline = "No deadline"
		}
		result.TodoItems = append(result.TodoItems, item)
	}

	return result
}
