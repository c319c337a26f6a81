package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/http/middleware"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/usecase"
)

type ReportHandler struct {
	Submit     *usecase.SubmitWeeklyReportUseCase
	Update     *usecase.UpdatePerformanceRecordUseCase
	MetricRepo entity.PerformanceMetricRepository
}

func NewReportHandler(
	submit *usecase.SubmitWeeklyReportUseCase,
	update *usecase.UpdatePerformanceRecordUseCase,
	metricRepo entity.PerformanceMetricRepository,
) *ReportHandler {
	return &ReportHandler{Submit: submit, Update: update, MetricRepo: metricRepo}
}

func (h *ReportHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitWeeklyReportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	metric, err := h.Submit.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordReportSubmitted()
	writeJSON(w, http.StatusCreated, metric)
}

func (h *ReportHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.MetricRepo.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if metrics == nil {
		metrics = []entity.PerformanceMetric{}
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (h *ReportHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	metric, err := h.MetricRepo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metric)
}

func (h *ReportHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitWeeklyReportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.Update.Execute(r.Context(), chi.URLParam(r, "id"), input); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
