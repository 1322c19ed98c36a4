package domain

// ExtractedMeetingData is the structure the extraction model is asked to
// return. Fields it omits stay at their zero value; EnsureDefaults replaces
// nil collections before the data moves downstream.
type ExtractedMeetingData struct {
	Tasks     []ExtractedTask `json:"tasks"`
	Meeting   MeetingInfo     `json:"meeting"`
	KeyPoints []string        `json:"key_points"`
	Decisions []string        `json:"decisions"`
	NextSteps []string        `json:"next_steps"`
}

type ExtractedTask struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee"`
	Deadline string `json:"deadline"`
}

type MeetingInfo struct {
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Participants []string `json:"participants"`
}

// EmptyExtractedMeetingData returns the fully-defaulted value used whenever
// extraction fails or produces nothing usable.
func EmptyExtractedMeetingData() ExtractedMeetingData {
	data := ExtractedMeetingData{}
	data.EnsureDefaults()
	return data
}

func (d *ExtractedMeetingData) EnsureDefaults() {
	if d.Tasks == nil {
		d.Tasks = []ExtractedTask{}
	}
	if d.Meeting.Participants == nil {
		d.Meeting.Participants = []string{}
	}
	if d.KeyPoints == nil {
		d.KeyPoints = []string{}
	}
	if d.Decisions == nil {
		d.Decisions = []string{}
	}
	if d.NextSteps == nil {
		d.NextSteps = []string{}
	}
}

// NormalizedResult is the stable output schema returned to clients. It is
// always fully shaped: calendar_event is null only when no meeting date was
// extracted, every other field is present and non-nil.
type NormalizedResult struct {
	CalendarEvent  *CalendarEvent `json:"calendar_event"`
	TodoItems      []TodoItem     `json:"todo_items"`
	MeetingSummary MeetingSummary `json:"meeting_summary"`
}

type CalendarEvent struct {
	Title        string   `json:"title"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Participants []string `json:"participants"`
}

type TodoItem struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee"`
	Deadline string `json:"deadline"`
	Status   string `json:"status"`
}

type MeetingSummary struct {
	KeyPoints   []string `json:"key_points"`
	Decisions   []string `json:"decisions"`
	NextSteps   []string `json:"next_steps"`
	GeneratedAt string   `json:"generated_at"`
}

const TodoStatusPending = "pending"
