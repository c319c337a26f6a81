package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/usecase"
)

type PipelineHandler struct {
	ListEntries *usecase.ListPipelineEntriesUseCase
	CreateEntry *usecase.CreatePipelineEntryUseCase
	UpdateEntry *usecase.UpdatePipelineEntryUseCase
}

func NewPipelineHandler(
	list *usecase.ListPipelineEntriesUseCase,
	create *usecase.CreatePipelineEntryUseCase,
	update *usecase.UpdatePipelineEntryUseCase,
) *PipelineHandler {
	return &PipelineHandler{
		ListEntries: list,
		CreateEntry: create,
		UpdateEntry: update,
	}
}

func (h *PipelineHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ListEntries.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *PipelineHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreatePipelineEntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	entry, err := h.CreateEntry.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// HandleUpdate persists a partial update. Moving the entry into CLOSED
// also credits the owner's weekly aggregate before the response goes out.
func (h *PipelineHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.UpdatePipelineEntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.UpdateEntry.Execute(r.Context(), id, input); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
