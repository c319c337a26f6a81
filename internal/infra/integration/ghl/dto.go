package ghl

// Raw wire shapes. The API has renamed fields between versions
// (title/name, monetaryValue/value, pipelineStageId/stage), so the DTOs
// carry both spellings and the mapper decides. Nothing outside this
// package touches these types.

type rawOpportunity struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Name            string  `json:"name"`
	MonetaryValue   float64 `json:"monetaryValue"`
	Value           float64 `json:"value"`
	Status          string  `json:"status"`
	PipelineStageID string  `json:"pipelineStageId"`
	Stage           string  `json:"stage"`
	PipelineID      string  `json:"pipelineId"`
	ContactID       string  `json:"contactId"`
	DateAdded       string  `json:"dateAdded"`
	DateUpdated     string  `json:"dateUpdated"`
}

type rawPipelineStage struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Order    int    `json:"order"`
}

type rawPipeline struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Stages []rawPipelineStage `json:"stages"`
}

type rawContact struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Tags        []string `json:"tags"`
	DateAdded   string   `json:"dateAdded"`
	DateUpdated string   `json:"dateUpdated"`
}

type rawMeta struct {
	Total       int `json:"total"`
	Count       int `json:"count"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

type pipelinesResponse struct {
	Pipelines []rawPipeline `json:"pipelines"`
}

type opportunitiesResponse struct {
	Opportunities []rawOpportunity `json:"opportunities"`
	Meta          rawMeta          `json:"meta"`
}

type contactsResponse struct {
	Contacts []rawContact `json:"contacts"`
	Meta     rawMeta      `json:"meta"`
}

type contactEnvelope struct {
	Contact *rawContact `json:"contact"`
	// Some endpoints return the record at the top level instead.
	rawContact
}

type opportunityEnvelope struct {
	Opportunity *rawOpportunity `json:"opportunity"`
	rawOpportunity
}

// CreateOpportunityInput is what we send when a new card is added to
// the board.
type CreateOpportunityInput struct {
	Title      string  `json:"title"`
	Value      float64 `json:"monetaryValue"`
	PipelineID string  `json:"pipelineId"`
	StageID    string  `json:"pipelineStageId"`
	ContactID  string  `json:"contactId,omitempty"`
	Status     string  `json:"status,omitempty"`
}

type UpdateOpportunityInput struct {
	Title      string  `json:"title,omitempty"`
	Value      float64 `json:"monetaryValue,omitempty"`
	PipelineID string  `json:"pipelineId,omitempty"`
	StageID    string  `json:"pipelineStageId,omitempty"`
	Status     string  `json:"status,omitempty"`
}

type CreateContactInput struct {
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

type searchContactsRequest struct {
	LocationID string `json:"locationId"`
	PageLimit  int    `json:"pageLimit"`
	Query      string `json:"query"`
}
