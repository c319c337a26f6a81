package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/http/middleware"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/usecase"
)

type CallHandler struct {
	GetCallList   *usecase.GetCallListUseCase
	LogCall       *usecase.LogCallUseCase
	UpdateAttempt *usecase.UpdateCallAttemptUseCase
	rateLimiter   *RateLimiter
}

func NewCallHandler(
	getCallList *usecase.GetCallListUseCase,
	logCall *usecase.LogCallUseCase,
	updateAttempt *usecase.UpdateCallAttemptUseCase,
) *CallHandler {
	return &CallHandler{
		GetCallList:   getCallList,
		LogCall:       logCall,
		UpdateAttempt: updateAttempt,
		rateLimiter:   NewRateLimiter(30, time.Minute), // 30 logs/min per IP
	}
}

// HandleCallList returns the ranked worklist. The daily quota is applied
// here, at the edge; pass limit=0 for the full ordering.
func (h *CallHandler) HandleCallList(w http.ResponseWriter, r *http.Request) {
	limit := usecase.DailyCallQuota
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.GetCallList.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []entity.CallListEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *CallHandler) HandleLogCall(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.LogCallInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	attempt, err := h.LogCall.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordCallLogged(attempt.Status)
	writeJSON(w, http.StatusCreated, attempt)
}

func (h *CallHandler) HandleUpdateAttempt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input struct {
		Status            *string    `json:"status,omitempty"`
		Notes             *string    `json:"notes,omitempty"`
		NextFollowUp      *time.Time `json:"next_follow_up,omitempty"`
		ClearNextFollowUp bool       `json:"clear_next_follow_up,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	update := entity.CallAttemptUpdate{
		Status:            input.Status,
		Notes:             input.Notes,
		NextFollowUp:      input.NextFollowUp,
		ClearNextFollowUp: input.ClearNextFollowUp,
	}
	if err := h.UpdateAttempt.Execute(r.Context(), id, update); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
