package usecase

import (
	"fmt"
	"math"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreatePipelineEntryInput(input CreatePipelineEntryInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.UserID) == "" {
		errors = append(errors, ValidationError{"user_id", "is required"})
	}

	if strings.TrimSpace(input.ProspectName) == "" {
		errors = append(errors, ValidationError{"prospect_name", "is required"})
	} else if len(input.ProspectName) > 200 {
		errors = append(errors, ValidationError{"prospect_name", "must not exceed 200 characters"})
	}

	// The ranker compares raw values, so garbage has to be stopped here.
	if !isFiniteAmount(input.Value) {
		errors = append(errors, ValidationError{"value", "must be a finite number"})
	} else if input.Value <= 0 {
		errors = append(errors, ValidationError{"value", "must be greater than zero"})
	}

	return errors
}

func ValidateLogCallInput(input LogCallInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.PipelineEntryID) == "" {
		errors = append(errors, ValidationError{"pipeline_entry_id", "is required"})
	}

	switch input.Status {
	case "PENDING", "COMPLETED", "NO_ANSWER", "RESCHEDULED":
	case "":
		errors = append(errors, ValidationError{"status", "is required"})
	default:
		errors = append(errors, ValidationError{"status", "must be PENDING, COMPLETED, NO_ANSWER or RESCHEDULED"})
	}

	if len(input.Notes) > 2000 {
		errors = append(errors, ValidationError{"notes", "must not exceed 2000 characters"})
	}

	return errors
}

func ValidateSubmitWeeklyReportInput(input SubmitWeeklyReportInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.UserID) == "" {
		errors = append(errors, ValidationError{"user_id", "is required"})
	}

	if input.WeekNumber < 1 || input.WeekNumber > 53 {
		errors = append(errors, ValidationError{"week_number", "must be between 1 and 53"})
	}
	if input.Year < 2000 || input.Year > 2100 {
		errors = append(errors, ValidationError{"year", "is out of range"})
	}

	if !isFiniteAmount(input.SalesAmount) {
		errors = append(errors, ValidationError{"sales_amount", "must be a finite number"})
	} else if input.SalesAmount < 0 {
		errors = append(errors, ValidationError{"sales_amount", "must not be negative"})
	}

	if input.CallsMade < 0 {
		errors = append(errors, ValidationError{"calls_made", "must not be negative"})
	}
	if input.MeetingsBooked < 0 {
		errors = append(errors, ValidationError{"meetings_booked", "must not be negative"})
	}
	if input.LeadsGenerated < 0 {
		errors = append(errors, ValidationError{"leads_generated", "must not be negative"})
	}

	return errors
}

func isFiniteAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
