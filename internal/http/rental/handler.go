package rental

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/http/resource"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/respond"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

type Handler struct {
	rentals   *ledger.Rentals
	finalizer *ledger.Finalizer
}

func NewHandler(rentals *ledger.Rentals, finalizer *ledger.Finalizer) *Handler {
	return &Handler{rentals: rentals, finalizer: finalizer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Get("/{id}/payables", h.payables)
	r.Post("/{id}/finalize", h.finalize)
	r.Post("/{id}/cancel", h.cancel)
	r.Delete("/{id}", h.delete)
}

type createRentalRequest struct {
	VehicleID uuid.UUID `json:"vehicle_id"`
	ClientID  uuid.UUID `json:"client_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	DailyRate int64     `json:"daily_rate"`
	Agent     string    `json:"agent"`
	// IssueInvoice defaults to true when omitted.
	IssueInvoice *bool `json:"issue_invoice"`
}

type bookingResponse struct {
	Rental   *resource.Rental    `json:"rental"`
	Payables []*resource.Payable `json:"payables"`
	Invoice  *resource.Invoice   `json:"invoice,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	start, err := ledger.ParseDate("start_date", req.StartDate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	end, err := ledger.ParseDate("end_date", req.EndDate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	booking, err := h.rentals.Create(r.Context(), ledger.CreateRentalParams{
		VehicleID:    req.VehicleID,
		ClientID:     req.ClientID,
		StartDate:    start,
		EndDate:      end,
		DailyRate:    req.DailyRate,
		Agent:        req.Agent,
		IssueInvoice: req.IssueInvoice == nil || *req.IssueInvoice,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, bookingResponse{
		Rental:   resource.FromRental(booking.Rental),
		Payables: resource.List(booking.Payables, resource.FromPayable),
		Invoice:  resource.FromInvoice(booking.Invoice),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ledger.RentalFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(ledger.RentalStatus(s))
	}

	clientID, err := respond.QueryID(r, "client_id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	filter.ClientID = clientID

	rentals, err := h.rentals.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.List(rentals, resource.FromRental))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	rental, err := h.rentals.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.FromRental(rental))
}

func (h *Handler) payables(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	payables, err := h.rentals.Payables(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.List(payables, resource.FromPayable))
}

type updateRentalRequest struct {
	EndDate string `json:"end_date"`
	Status  string `json:"status"`
}

type updateResponse struct {
	Rental           *resource.Rental    `json:"rental"`
	AdjustedPayables []*resource.Payable `json:"adjusted_payables"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateRentalRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p := ledger.UpdateRentalParams{}

	if req.EndDate != "" {
		end, err := ledger.ParseDate("end_date", req.EndDate)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		p.EndDate = &end
	}

	if req.Status != "" {
		p.Status = new(ledger.RentalStatus(req.Status))
	}

	res, err := h.rentals.Update(r.Context(), id, p)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, updateResponse{
		Rental:           resource.FromRental(res.Rental),
		AdjustedPayables: resource.List(res.AdjustedPayables, resource.FromPayable),
	})
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.rentals.Cancel(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.FromRental(res.Rental))
}

type finalizeRequest struct {
	ActualEndDate string `json:"actual_end_date"`
}

type finalizeResponse struct {
	Rental           *resource.Rental    `json:"rental"`
	ActualDays       int64               `json:"actual_days"`
	ActualTotal      int64               `json:"actual_total"`
	BilledAmount     int64               `json:"billed_amount"`
	Diff             int64               `json:"diff"`
	ExtraInvoice     *resource.Invoice   `json:"extra_invoice,omitempty"`
	Refund           *resource.Refund    `json:"refund,omitempty"`
	AdjustedPayables []*resource.Payable `json:"adjusted_payables"`
	UnissuedRefund   int64               `json:"unissued_refund,omitempty"`
	Warnings         []string            `json:"warnings,omitempty"`
}

func (h *Handler) finalize(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req finalizeRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	actualEnd, err := ledger.ParseDate("actual_end_date", req.ActualEndDate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.finalizer.Finalize(r.Context(), id, actualEnd)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, finalizeResponse{
		Rental:           resource.FromRental(res.Rental),
		ActualDays:       res.ActualDays,
		ActualTotal:      res.ActualTotal,
		BilledAmount:     res.BilledAmount,
		Diff:             res.Diff,
		ExtraInvoice:     resource.FromInvoice(res.ExtraInvoice),
		Refund:           resource.FromRefund(res.Refund),
		AdjustedPayables: resource.List(res.AdjustedPayables, resource.FromPayable),
		UnissuedRefund:   res.UnissuedRefund,
		Warnings:         res.Warnings,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.rentals.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
