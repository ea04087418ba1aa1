package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/gymtab/internal/gym/service"
	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/aussiebroadwan/gymtab/pkg/httpx"
	"github.com/aussiebroadwan/gymtab/pkg/slogx"
)

// QRHandler issues temporal check-in tokens.
type QRHandler struct {
	QRService *service.QRService
}

// HandleEntrance handles POST /v1/qr/entrance
//
//	@Summary		Issue Entrance Token
//	@Description	Issues a single-use kiosk token not bound to a member. Members redeem it from their own session.
//	@Tags			QR
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	gymsdk.IssueTokenResponse	"token, expires_at"
//	@Failure		401	{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Failure		403	{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/qr/entrance [post].
func (h *QRHandler) HandleEntrance(w http.ResponseWriter, r *http.Request) {
	issued, err := h.QRService.IssueEntranceToken(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to issue entrance token")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, gymsdk.IssueTokenResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	})
}

// HandleEntrancePNG handles GET /v1/qr/entrance.png
//
//	@Summary		Render Entrance QR
//	@Description	Issues an entrance token and returns it encoded as a PNG QR code for a kiosk display.
//	@Tags			QR
//	@Produce		png
//	@Security		BearerAuth
//	@Success		200	{file}		binary					"QR code"
//	@Failure		401	{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/qr/entrance.png [get].
func (h *QRHandler) HandleEntrancePNG(w http.ResponseWriter, r *http.Request) {
	issued, err := h.QRService.IssueEntranceToken(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to issue entrance token")
		return
	}

	png, err := h.QRService.RenderPNG(issued.Token)
	if err != nil {
		writeServiceError(w, r, err, "Failed to render QR code")
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("X-Token-Expires-At", issued.ExpiresAt.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to write qr png", "error", err)
	}
}

// HandleMember handles POST /v1/qr/me
//
//	@Summary		Issue Member Token
//	@Description	Issues a single-use check-in token bound to the calling member (the token subject).
//	@Tags			QR
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	gymsdk.IssueTokenResponse	"token, expires_at"
//	@Failure		401	{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Failure		403	{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/qr/me [post].
func (h *QRHandler) HandleMember(w http.ResponseWriter, r *http.Request) {
	caller, _ := httpx.CallerFrom(r.Context())
	memberID := caller.Subject
	if memberID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, gymsdk.ErrorCodeInvalidToken, "token has no subject")
		return
	}

	issued, err := h.QRService.Issue(r.Context(), memberID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to issue member token")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, gymsdk.IssueTokenResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	})
}
