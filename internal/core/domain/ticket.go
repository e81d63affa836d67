package domain

import "time"

// IssueType is the tracker-side classification of a ticket.
type IssueType string

const (
	IssueStory IssueType = "STORY"
	IssueBug   IssueType = "BUG"
	IssueTask  IssueType = "TASK"
)

// Ticket is an immutable unit of recorded engineering work synced from the
// external tracker. A ticket belongs to exactly one accounting period,
// determined solely by its resolution date's calendar month; unresolved
// tickets belong to no period.
type Ticket struct {
	ID             string     `json:"id"`
	TicketID       string     `json:"ticketID"` // Unique tracker key, e.g. "PAY-101"
	EpicKey        string     `json:"epicKey"`
	IssueType      IssueType  `json:"issueType"`
	Summary        string     `json:"summary"`
	StoryPoints    int        `json:"storyPoints"` // Non-negative effort estimate
	ResolutionDate *time.Time `json:"resolutionDate"`
	FixVersion     string     `json:"fixVersion"`
	AssigneeID     string     `json:"assigneeID"`
	ProjectID      string     `json:"projectID"`
	AuditFields
}

// IsCapitalizable applies the hard classification rule: only STORY work on a
// capitalizable project currently in DEV is capitalized. Everything else is
// expensed, including bugs and any work outside the DEV phase.
func (t Ticket) IsCapitalizable(p Project) bool {
	return t.IssueType == IssueStory && p.IsCapitalizable && p.Status == StatusDev
}
