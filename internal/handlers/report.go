package handlers

import (
	"net/http"

	"github.com/miky2184/chargeability-manager-api/internal/db"
)

// ==========================
// Report Handler (read-only passthrough over the reporting views)
// ==========================
type ReportHandler struct {
	Exec *db.Executor
}

func (h *ReportHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, `SELECT * FROM check_forecast`)
}

func (h *ReportHandler) Chargeability(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, `SELECT eid, work_hh, chg, hh_no_chg_to_assign FROM chg_all`)
}

func (h *ReportHandler) TimeReports(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, `SELECT * FROM time_report`)
}

func (h *ReportHandler) serve(w http.ResponseWriter, r *http.Request, query string) {
	rows, err := h.Exec.Execute(r.Context(), db.SchemaChargeability, query, nil, db.ModeRead)
	if err != nil {
		QueryFailure(w)
		return
	}
	WriteJSON(w, rows)
}
