package settlement

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/http/resource"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/respond"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

type Handler struct {
	settlement *ledger.Settlement
}

func NewHandler(settlement *ledger.Settlement) *Handler {
	return &Handler{settlement: settlement}
}

func (h *Handler) PayableRoutes(r chi.Router) {
	r.Get("/", h.listPayables)
	r.Patch("/{id}", h.updatePayable)
}

func (h *Handler) RefundRoutes(r chi.Router) {
	r.Post("/", h.issueRefund)
	r.Get("/", h.listRefunds)
	r.Patch("/{id}", h.updateRefund)
}

func (h *Handler) ExpenseRoutes(r chi.Router) {
	r.Post("/", h.postExpense)
	r.Get("/", h.listExpenses)
}

type statusRequest struct {
	Status string `json:"status"`
}

type payableResponse struct {
	Payable *resource.Payable `json:"payable"`
	Expense *resource.Expense `json:"expense,omitempty"`
}

type refundResponse struct {
	Refund  *resource.Refund  `json:"refund"`
	Expense *resource.Expense `json:"expense,omitempty"`
}

func (h *Handler) listPayables(w http.ResponseWriter, r *http.Request) {
	filter := ledger.PayableFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(ledger.PayableStatus(s))
	}

	rentalID, err := respond.QueryID(r, "rental_id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	filter.RentalID = rentalID

	payables, err := h.settlement.ListPayables(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.List(payables, resource.FromPayable))
}

func (h *Handler) updatePayable(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req statusRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.settlement.UpdatePayable(r.Context(), id, ledger.PayableStatus(req.Status))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, payableResponse{
		Payable: resource.FromPayable(res.Payable),
		Expense: resource.FromExpense(res.Expense),
	})
}

type issueRefundRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	Date      string    `json:"date"`
}

func (h *Handler) issueRefund(w http.ResponseWriter, r *http.Request) {
	var req issueRefundRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	date, err := optionalDate("date", req.Date)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	refund, err := h.settlement.IssueRefund(r.Context(), ledger.IssueRefundParams{
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
		Reason:    req.Reason,
		Date:      date,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, resource.FromRefund(refund))
}

func (h *Handler) listRefunds(w http.ResponseWriter, r *http.Request) {
	var status *ledger.RefundStatus
	if s := r.URL.Query().Get("status"); s != "" {
		status = new(ledger.RefundStatus(s))
	}

	refunds, err := h.settlement.ListRefunds(r.Context(), status)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.List(refunds, resource.FromRefund))
}

func (h *Handler) updateRefund(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req statusRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.settlement.UpdateRefund(r.Context(), id, ledger.RefundStatus(req.Status))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, refundResponse{
		Refund:  resource.FromRefund(res.Refund),
		Expense: resource.FromExpense(res.Expense),
	})
}

type postExpenseRequest struct {
	CategoryID  uuid.UUID `json:"category_id"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
}

func (h *Handler) postExpense(w http.ResponseWriter, r *http.Request) {
	var req postExpenseRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	date, err := optionalDate("date", req.Date)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	expense, err := h.settlement.PostExpense(r.Context(), ledger.PostExpenseParams{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, resource.FromExpense(expense))
}

// optionalDate parses s, leaving the zero time when it is empty so the
// ledger defaults it to today.
func optionalDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	return ledger.ParseDate(field, s)
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ledger.ExpenseFilter{}

	categoryID, err := respond.QueryID(r, "category_id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	filter.CategoryID = categoryID

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

	expenses, err := h.settlement.ListExpenses(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, resource.List(expenses, resource.FromExpense))
}
