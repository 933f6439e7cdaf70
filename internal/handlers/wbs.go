package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/miky2184/chargeability-manager-api/internal/db"
)

// ==========================
// WBS Handler
// ==========================
type WbsHandler struct {
	Exec *db.Executor
}

type wbsInput struct {
	Wbs         string   `json:"wbs" validate:"required,max=64"`
	WbsType     *string  `json:"wbs_type"`
	ProjectName *string  `json:"project_name"`
	BudgetMM    *float64 `json:"budget_mm"`
	BudgetTot   *float64 `json:"budget_tot"`
}

// ==========================
// List WBS
// ==========================
// Every row carries the constant salvata flag; clients use it to distinguish
// persisted rows from unsaved ones they hold locally.
func (h *WbsHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Exec.Execute(r.Context(), db.SchemaChargeability,
		`SELECT wbs, wbs_type, project_name, budget_mm, budget_tot, TRUE AS salvata
		 FROM wbs
		 ORDER BY wbs`,
		nil, db.ModeRead)
	if err != nil {
		QueryFailure(w)
		return
	}
	WriteJSON(w, rows)
}

// ==========================
// Create WBS
// ==========================
func (h *WbsHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeWbs(w, r, true)
	if !ok {
		return
	}

	_, err := h.Exec.Execute(r.Context(), db.SchemaChargeability,
		`INSERT INTO wbs (wbs, wbs_type, project_name, budget_mm, budget_tot)
		 VALUES ($1, $2, $3, $4, $5)`,
		[]any{input.Wbs, input.WbsType, input.ProjectName, input.BudgetMM, input.BudgetTot},
		db.ModeWrite)
	if err != nil {
		QueryFailure(w)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ==========================
// Update WBS (silently succeeds when the key does not exist)
// ==========================
func (h *WbsHandler) Update(w http.ResponseWriter, r *http.Request) {
	wbsID := chi.URLParam(r, "wbs_id")

	input, ok := decodeWbs(w, r, false)
	if !ok {
		return
	}

	_, err := h.Exec.Execute(r.Context(), db.SchemaChargeability,
		`UPDATE wbs
		 SET wbs_type = $1, project_name = $2, budget_mm = $3, budget_tot = $4
		 WHERE wbs = $5`,
		[]any{input.WbsType, input.ProjectName, input.BudgetMM, input.BudgetTot, wbsID},
		db.ModeWrite)
	if err != nil {
		QueryFailure(w)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ==========================
// Delete WBS (silently succeeds when the key does not exist)
// ==========================
func (h *WbsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	wbsID := chi.URLParam(r, "wbs_id")

	_, err := h.Exec.Execute(r.Context(), db.SchemaChargeability,
		`DELETE FROM wbs WHERE wbs = $1`,
		[]any{wbsID}, db.ModeWrite)
	if err != nil {
		QueryFailure(w)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// decodeWbs decodes and validates the request body. requireKey is false for
// updates, where the key comes from the URL.
func decodeWbs(w http.ResponseWriter, r *http.Request, requireKey bool) (wbsInput, bool) {
	var input wbsInput
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
