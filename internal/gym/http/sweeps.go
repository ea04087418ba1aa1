package http

import (
	"net/http"

	"github.com/aussiebroadwan/gymtab/internal/gym/service"
	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/aussiebroadwan/gymtab/pkg/httpx"
)

type SweepHandler struct {
	ReminderService *service.ReminderService
}

// ServeHTTP godoc
//
//	@Summary		Run Reminder Sweep
//	@Description	Runs the daily payment reminder and debt alert sweep now. Per-member send failures are
//	@Description	counted in the report; the sweep itself does not fail.
//	@Tags			Reminders
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	gymsdk.SweepResponse	"per-kind report"
//	@Failure		401	{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/sweeps [post].
func (h *SweepHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report := h.ReminderService.Sweep(r.Context())

	httpx.WriteJSON(w, http.StatusOK, gymsdk.SweepResponse{
		Date:             report.Date.Format(gymsdk.DateLayout),
		PaymentReminders: kindReport(report.Reminders),
		DebtAlerts:       kindReport(report.DebtAlerts),
	})
}
