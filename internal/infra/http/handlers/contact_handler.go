package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/http/middleware"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/integration/ghl"
)

// ContactHandler proxies the CRM contact book. No local storage; every
// request goes through to the remote API.
type ContactHandler struct {
	Client *ghl.Client
}

func NewContactHandler(client *ghl.Client) *ContactHandler {
	return &ContactHandler{Client: client}
}

func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	result, err := h.Client.ListContacts(r.Context(), page, limit)
	if err != nil {
		middleware.RecordIntegrationError("ghl")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ContactHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q is required", http.StatusBadRequest)
		return
	}
	limit := queryInt(r, "limit", 20)

	contacts, err := h.Client.SearchContacts(r.Context(), query, limit)
	if err != nil {
		middleware.RecordIntegrationError("ghl")
		writeError(w, err)
		return
	}
	if contacts == nil {
		contacts = []entity.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input ghl.CreateContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if input.FirstName == "" && input.LastName == "" && input.Email == "" && input.Phone == "" {
		http.Error(w, "at least one of firstName, lastName, email or phone is required", http.StatusBadRequest)
		return
	}

	contact, err := h.Client.CreateContact(r.Context(), input)
	if err != nil {
		middleware.RecordIntegrationError("ghl")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func (h *ContactHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input ghl.CreateContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	contact, err := h.Client.UpdateContact(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		middleware.RecordIntegrationError("ghl")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
