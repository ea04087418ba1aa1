package http

import (
	"net/http"

	"github.com/aussiebroadwan/gymtab/internal/gym/service"
	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/aussiebroadwan/gymtab/pkg/httpx"
)

type PaymentsHandler struct {
	PaymentService *service.PaymentService
	MemberService  *service.MemberService
}

// HandleCreate handles POST /v1/payments
//
//	@Summary		Register Payment
//	@Description	Records a completed payment. The member becomes OK, expires one calendar month after the
//	@Description	payment date (clamped to the month's last day) and the attendance counter resets to zero.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		gymsdk.PaymentRequest			true	"Payment"
//	@Success		201		{object}	gymsdk.RegisterPaymentResponse	"payment, member"
//	@Failure		400		{object}	gymsdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	gymsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	gymsdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	gymsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	gymsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/payments [post].
func (h *PaymentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req gymsdk.PaymentRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalidRequest(w, err.Error())
		return
	}

	payment, member, err := h.PaymentService.RegisterPayment(r.Context(), service.PaymentRequest{
		MemberID:    req.MemberID,
		Amount:      req.Amount,
		Concept:     req.Concept,
		PaymentDate: req.PaymentDate,
	})
	if err != nil {
		writeServiceError(w, r, err, "Failed to register payment")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, gymsdk.RegisterPaymentResponse{
		Payment: paymentResponse(payment),
		Member:  memberResponse(h.MemberService.View(member)),
	})
}

// HandleList handles GET /v1/members/{id}/payments
//
//	@Summary		Payment History
//	@Description	Returns a member's payments, oldest first.
//	@Tags			Payments
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Member ID (ULID)"
//	@Param			limit	query		int							false	"Page size (1-500, default 50)"
//	@Param			after	query		string						false	"Cursor from a previous page"
//	@Success		200		{object}	gymsdk.PaymentListResponse	"payments, next"
//	@Failure		400		{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/members/{id}/payments [get].
func (h *PaymentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}
	opts, ok := listOptions(r)
	if !ok {
		writeInvalidRequest(w, "limit must be a positive integer")
		return
	}

	payments, err := h.PaymentService.ListPayments(r.Context(), id, opts)
	if err != nil {
		writeServiceError(w, r, err, "Failed to list payments")
		return
	}

	out := gymsdk.PaymentListResponse{Payments: make([]gymsdk.PaymentResponse, 0, len(payments))}
	for _, p := range payments {
		out.Payments = append(out.Payments, paymentResponse(p))
	}
	out.Next = nextCursor(opts, len(payments), func() string { return payments[len(payments)-1].ID })

	httpx.WriteJSON(w, http.StatusOK, out)
}
