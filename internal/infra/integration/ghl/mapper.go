package ghl

import (
	"sort"
	"time"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

// The one place raw wire shapes become stable internal ones. Field
// fallbacks live here and nowhere else.

func mapOpportunity(raw rawOpportunity) entity.Opportunity {
	title := raw.Title
	if title == "" {
		title = raw.Name
	}
	value := raw.MonetaryValue
	if value == 0 {
		value = raw.Value
	}
	stageID := raw.PipelineStageID
	if stageID == "" {
		stageID = raw.Stage
	}

	return entity.Opportunity{
		ID:          raw.ID,
		Title:       title,
		Value:       value,
		Status:      raw.Status,
		StageID:     stageID,
		PipelineID:  raw.PipelineID,
		ContactID:   raw.ContactID,
		DateAdded:   parseAPITime(raw.DateAdded),
		DateUpdated: parseAPITime(raw.DateUpdated),
	}
}

func mapOpportunities(raws []rawOpportunity) []entity.Opportunity {
	opps := make([]entity.Opportunity, 0, len(raws))
	for _, raw := range raws {
		opps = append(opps, mapOpportunity(raw))
	}
	return opps
}

func mapPipeline(raw rawPipeline) entity.Pipeline {
	stages := make([]entity.PipelineStageDef, 0, len(raw.Stages))
	for _, s := range raw.Stages {
		order := s.Position
		if order == 0 {
			order = s.Order
		}
		stages = append(stages, entity.PipelineStageDef{
			ID:    s.ID,
			Name:  s.Name,
			Order: order,
		})
	}
	sort.SliceStable(stages, func(i, j int) bool { return stages[i].Order < stages[j].Order })

	return entity.Pipeline{
		ID:     raw.ID,
		Name:   raw.Name,
		Stages: stages,
	}
}

func mapContact(raw rawContact) entity.Contact {
	return entity.Contact{
		ID:        raw.ID,
		FirstName: raw.FirstName,
		LastName:  raw.LastName,
		Email:     raw.Email,
		Phone:     raw.Phone,
		Tags:      raw.Tags,
		DateAdded: parseAPITime(raw.DateAdded),
	}
}

func mapContacts(raws []rawContact) []entity.Contact {
	contacts := make([]entity.Contact, 0, len(raws))
	for _, raw := range raws {
		contacts = append(contacts, mapContact(raw))
	}
	return contacts
}

func mapMeta(raw rawMeta, page int) entity.PageMeta {
	meta := entity.PageMeta{
		Total:       raw.Total,
		Count:       raw.Count,
		CurrentPage: raw.CurrentPage,
		TotalPages:  raw.TotalPages,
	}
	if meta.CurrentPage == 0 {
		meta.CurrentPage = page
	}
	if meta.TotalPages == 0 {
		meta.TotalPages = 1
	}
	return meta
}

func parseAPITime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	// Older responses drop the timezone.
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
