package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/miky2184/chargeability-manager-api/internal/db"
)

// ==========================
// Resource Handler (employees, keyed by eid)
// ==========================
type ResourceHandler struct {
	Exec *db.Executor
}

type resourceInput struct {
	EID        string   `json:"eid" validate:"required,max=64"`
	LastName   *string  `json:"last_name"`
	FirstName  *string  `json:"first_name"`
	Level      *string  `json:"level"`
	LoadedCost *float64 `json:"loaded_cost"`
	Office     *string  `json:"office"`
	Dte        *string  `json:"dte"`
}

// ==========================
// List Resources
// ==========================
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Exec.Execute(r.Context(), db.SchemaChargeability,
		`SELECT eid, last_name, first_name, level, loaded_cost, office, dte
		 FROM resources
		 ORDER BY eid`,
		nil, db.ModeRead)
	if err != nil {
		QueryFailure(w)
		return
	}
	WriteJSON(w, rows)
}

// ==========================
// Create Resource
// ==========================
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeResource(w, r, true)
	if !ok {
		return
	}

	_, err := h.Exec.Execute(r.Context(), db.SchemaChargeability,
		`INSERT INTO resources (eid, last_name, first_name, level, loaded_cost, office, dte)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		[]any{input.EID, input.LastName, input.FirstName, input.Level, input.LoadedCost, input.Office, input.Dte},
		db.ModeWrite)
	if err != nil {
		QueryFailure(w)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ==========================
// Update Resource (silently succeeds when the key does not exist)
// ==========================
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	eid := chi.URLParam(r, "resource_id")

	input, ok := decodeResource(w, r, false)
	if !ok {
		return
	}

	_, err := h.Exec.Execute(r.Context(), db.SchemaChargeability,
		`UPDATE resources
		 SET last_name = $1, first_name = $2, level = $3, loaded_cost = $4, office = $5, dte = $6
		 WHERE eid = $7`,
		[]any{input.LastName, input.FirstName, input.Level, input.LoadedCost, input.Office, input.Dte, eid},
		db.ModeWrite)
	if err != nil {
		QueryFailure(w)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ==========================
// Delete Resource (silently succeeds when the key does not exist)
// ==========================
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eid := chi.URLParam(r, "resource_id")

	_, err := h.Exec.Execute(r.Context(), db.SchemaChargeability,
		`DELETE FROM resources WHERE eid = $1`,
		[]any{eid}, db.ModeWrite)
	if err != nil {
		QueryFailure(w)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func decodeResource(w http.ResponseWriter, r *http.Request, requireKey bool) (resourceInput, bool) {
	var input resourceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return input, false
	}
	if requireKey {
		if err := validator.New().Struct(input); err != nil {
			JSONError(w, "validation failed", http.StatusBadRequest)
			return input, false
		}
	}
	return input, true
}
