package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/http/resource"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/respond"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

type Handler struct {
	billing *ledger.Billing
}

func NewHandler(billing *ledger.Billing) *Handler {
	return &Handler{billing: billing}
}

func (h *Handler) InvoiceRoutes(r chi.Router) {
	r.Post("/", h.issueInvoice)
	r.Get("/", h.listInvoices)
	r.Get("/{id}", h.getInvoice)
	r.Get("/{id}/payments", h.invoicePayments)
	r.Delete("/{id}", h.deleteInvoice)
}

func (h *Handler) PaymentRoutes(r chi.Router) {
	r.Post("/", h.recordPayment)
	r.Get("/", h.listPayments)
	r.Delete("/{id}", h.deletePayment)
}

type issueInvoiceRequest struct {
	ClientID uuid.UUID  `json:"client_id"`
	RentalID *uuid.UUID `json:"rental_id"`
	Amount   int64      `json:"amount"`
	Date     string     `json:"date"`
	Note     string     `json:"note"`
}

func (h *Handler) issueInvoice(w http.ResponseWriter, r *http.Request) {
	var req issueInvoiceRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p := ledger.IssueInvoiceParams{
		ClientID: req.ClientID,
		RentalID: req.RentalID,
		Amount:   req.Amount,
	}

	if req.Date != "" {
		date, err := ledger.ParseDate("date", req.Date)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		p.Date = date
	}

	if req.Note != "" {
		p.Details = &ledger.InvoiceDetails{Note: req.Note}
	}

	inv, err := h.billing.IssueInvoice(r.Context(), p)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, resource.FromInvoice(inv))
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ledger.InvoiceFilter{}

	if s := q.Get("status"); s != "" {
		filter.Status = new(ledger.InvoiceStatus(s))
	}

	clientID, err := respond.QueryID(r, "client_id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	filter.ClientID = clientID

	if s := q.Get("start_date"); s != "" {
		t, err := ledger.ParseDate("start_date", s)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		filter.StartDate = &t
	}

	if s := q.Get("end_date"); s != "" {
		t, err := ledger.ParseDate("end_date", s)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		filter.EndDate = &t
	}

	invoices, err := h.billing.ListInvoices(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.List(invoices, resource.FromInvoice))
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	inv, err := h.billing.GetInvoice(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.FromInvoice(inv))
}

func (h *Handler) invoicePayments(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	payments, err := h.billing.ListPayments(r.Context(), ledger.PaymentFilter{InvoiceID: &id})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.List(payments, resource.FromPayment))
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.billing.DeleteInvoice(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type recordPaymentRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id"`
	Amount    int64     `json:"amount"`
	Date      string    `json:"date"`
	Reference string    `json:"reference"`
}

type paymentResponse struct {
	Payment          *resource.Payment `json:"payment"`
	Invoice          *resource.Invoice `json:"invoice"`
	ReleasedPayables int64             `json:"released_payables"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p := ledger.RecordPaymentParams{
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
		Reference: req.Reference,
	}

	if req.Date != "" {
		date, err := ledger.ParseDate("date", req.Date)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		p.Date = date
	}

	res, err := h.billing.RecordPayment(r.Context(), p)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, paymentResponse{
		Payment:          resource.FromPayment(res.Payment),
		Invoice:          resource.FromInvoice(res.Invoice),
		ReleasedPayables: res.ReleasedPayables,
	})
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := respond.QueryID(r, "invoice_id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	payments, err := h.billing.ListPayments(r.Context(), ledger.PaymentFilter{InvoiceID: invoiceID})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.List(payments, resource.FromPayment))
}

func (h *Handler) deletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	inv, err := h.billing.DeletePayment(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.FromInvoice(inv))
}
