package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/usecase"
)

type AssignmentHandler struct {
	List         *usecase.ListAssignmentsUseCase
	SetCompleted *usecase.SetAssignmentCompletedUseCase
}

func NewAssignmentHandler(
	list *usecase.ListAssignmentsUseCase,
	setCompleted *usecase.SetAssignmentCompletedUseCase,
) *AssignmentHandler {
	return &AssignmentHandler{List: list, SetCompleted: setCompleted}
}

func (h *AssignmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	assignments, err := h.List.Execute(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if assignments == nil {
		assignments = []entity.AssignmentWithDetails{}
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (h *AssignmentHandler) HandleSetCompleted(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.SetCompleted.Execute(r.Context(), chi.URLParam(r, "id"), input.Completed); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
