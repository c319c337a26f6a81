package entity

import "time"

// Normalized shapes for records proxied from the external opportunity
// service. The raw API renames fields between versions; the ghl adapter
// maps everything into these once, and nothing downstream ever sees the
// wire names.

type Opportunity struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Value       float64   `json:"value"`
	Status      string    `json:"status"`
	StageID     string    `json:"stage_id"`
	PipelineID  string    `json:"pipeline_id"`
	ContactID   string    `json:"contact_id,omitempty"`
	DateAdded   time.Time `json:"date_added"`
	DateUpdated time.Time `json:"date_updated"`
}

type PipelineStageDef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type Pipeline struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Stages []PipelineStageDef `json:"stages"`
}

// Board is what the kanban page renders: one pipeline and its cards.
type Board struct {
	Pipeline      Pipeline      `json:"pipeline"`
	Opportunities []Opportunity `json:"opportunities"`
}

type Contact struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	DateAdded time.Time `json:"date_added"`
}

type PageMeta struct {
	Total       int `json:"total"`
	Count       int `json:"count"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}
