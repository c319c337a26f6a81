package usecase

import (
	"context"
	"time"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

type ListAssignmentsUseCase struct {
	AssignmentRepo entity.AssignmentRepository
}

func NewListAssignmentsUseCase(repo entity.AssignmentRepository) *ListAssignmentsUseCase {
	return &ListAssignmentsUseCase{AssignmentRepo: repo}
}

func (uc *ListAssignmentsUseCase) Execute(ctx context.Context, userID string) ([]entity.AssignmentWithDetails, error) {
	if userID == "" {
		return nil, &DomainError{Code: "MISSING_USER", Message: "user_id is required"}
	}
	return uc.AssignmentRepo.FindByUserID(ctx, userID)
}

type SetAssignmentCompletedUseCase struct {
	AssignmentRepo entity.AssignmentRepository
}

func NewSetAssignmentCompletedUseCase(repo entity.AssignmentRepository) *SetAssignmentCompletedUseCase {
	return &SetAssignmentCompletedUseCase{AssignmentRepo: repo}
}

func (uc *SetAssignmentCompletedUseCase) Execute(ctx context.Context, id string, completed bool) error {
	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}
	return uc.AssignmentRepo.SetCompleted(ctx, id, completed, completedAt)
}
