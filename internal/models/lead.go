package models

import "time"

// LeadStatus tracks where a lead sits in the follow-up funnel.
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "new"
	LeadStatusContacted  LeadStatus = "contacted"
	LeadStatusInProgress LeadStatus = "in-progress"
	LeadStatusClosed     LeadStatus = "closed"
	LeadStatusArchived   LeadStatus = "archived"
)

// LeadScore is the assistant's qualification of a lead's intent.
type LeadScore string

const (
	ScoreHot  LeadScore = "hot"
	ScoreWarm LeadScore = "warm"
	ScoreCold LeadScore = "cold"
)

// Note is an agent-written follow-up annotation on a lead.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Lead is created once from the contact form and afterwards mutated only
// by admin actions (status transitions, appended notes).
type Lead struct {
	ID                  string     `json:"id"`
	Timestamp           time.Time  `json:"timestamp"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	Message             string     `json:"message"`
	Status              LeadStatus `json:"status"`
	Notes               []Note     `json:"notes"`
	Score               LeadScore  `json:"score"`
	Summary             string     `json:"summary"`
	FavoritedProperties []string   `json:"favoritedProperties"`
}
