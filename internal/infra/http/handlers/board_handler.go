package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/http/middleware"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/integration/ghl"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/usecase"
)

type BoardHandler struct {
	GetBoard  *usecase.GetBoardUseCase
	Move      *usecase.MoveOpportunityUseCase
	CreateOpp *usecase.CreateOpportunityUseCase
}

func NewBoardHandler(
	getBoard *usecase.GetBoardUseCase,
	move *usecase.MoveOpportunityUseCase,
	createOpp *usecase.CreateOpportunityUseCase,
) *BoardHandler {
	return &BoardHandler{GetBoard: getBoard, Move: move, CreateOpp: createOpp}
}

// HandleGet serves the cached opportunity board. ?force=true bypasses the
// freshness window and revalidates against the CRM.
func (h *BoardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	board, err := h.GetBoard.Execute(r.Context(), force)
	if err != nil {
		middleware.RecordIntegrationError("ghl")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *BoardHandler) HandleCreateOpportunity(w http.ResponseWriter, r *http.Request) {
	var input ghl.CreateOpportunityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	opp, err := h.CreateOpp.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, opp)
}

func (h *BoardHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var input struct {
		PipelineID string `json:"pipeline_id"`
		StageID    string `json:"stage_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if input.StageID == "" {
		http.Error(w, "stage_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Move.Execute(r.Context(), chi.URLParam(r, "id"), input.PipelineID, input.StageID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
