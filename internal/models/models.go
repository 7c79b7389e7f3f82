package models

// User is a roster entry. Identity is the ID; uniqueness holds within the
// Users collection. Users are created at seed time and mutated only via
// role patches, never deleted.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is the singleton login state. An empty ActiveUserID means logged out.
type Session struct {
	ActiveUserID string `json:"activeUserId"`
}

// SOPVideo carries the playback location of a recorded procedure.
type SOPVideo struct {
	URL string `json:"url"`
}

// SOPSteps holds the per-language step text. Fields may be empty while an
// external generation process is still populating them.
type SOPSteps struct {
	EN string `json:"en"`
	IT string `json:"it"`
	ES string `json:"es"`
}

// SOP is a short video standard operating procedure.
type SOP struct {
	ID       string   `json:"id"`
	TaskName string   `json:"taskName"`
	Category string   `json:"category"`
	Poster   string   `json:"poster"`
	Duration string   `json:"duration"`
	Video    SOPVideo `json:"video"`
	Steps    SOPSteps `json:"steps"`
}

// Request kinds.
const (
	RequestKindGuide    = "guide"
	RequestKindFeedback = "feedback"
	RequestKindProblem  = "problem"
)

// Request statuses.
const (
	RequestStatusOpen = "open"
	RequestStatusDone = "done"
)

// Request is a staff-originated item routed to managers: a guide request,
// issue feedback on an SOP, or a problem report. SopID is a soft reference;
// a dangling one is tolerated and resolved to a not-found state by callers.
type Request struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	CategoryHint string `json:"categoryHint"`
	Kind         string `json:"kind"`
	SopID        string `json:"sopId"`
	SopTitle     string `json:"sopTitle"`
	Message      string `json:"message"`
	LocationName string `json:"locationName"`
	MediaName    string `json:"mediaName"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}
