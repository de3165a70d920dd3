package importcsv

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/respond"
	"github.com/MrJamesThe3rd/fleetledger/internal/importer"
	"github.com/MrJamesThe3rd/fleetledger/internal/reconcile"
)

const maxUpload = 10 << 20

type Handler struct {
	svc *reconcile.Service
}

func NewHandler(svc *reconcile.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importStatement)
}

// importStatement reconciles an uploaded bank statement. Payments are only
// recorded when dry_run is explicitly false.
func (h *Handler) importStatement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		respond.Error(w, r, apperr.Validation("failed to parse form: %v", err))
		return
	}

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		respond.Error(w, r, apperr.Validation("bank field is required"))
		return
	}

	dryRun := true

	if s := r.FormValue("dry_run"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			respond.Error(w, r, apperr.Validation("dry_run must be a boolean"))
			return
		}

		dryRun = v
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, apperr.Validation("file field is required"))
		return
	}
	defer file.Close()

	report, err := h.svc.Import(r.Context(), bank, file, dryRun)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	status := http.StatusOK
	if !dryRun && report.Recorded > 0 {
		status = http.StatusCreated
	}

	respond.JSON(w, status, report)
}
