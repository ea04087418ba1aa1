package http

import (
	"net/http"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/service"
	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/aussiebroadwan/gymtab/pkg/httpx"
)

// MembersHandler handles member registration and lookup.
type MembersHandler struct {
	MemberService     *service.MemberService
	AttendanceService *service.AttendanceService
}

// HandleCreate handles POST /v1/members
//
//	@Summary		Create Member
//	@Description	Registers a member in the pending billing state.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		gymsdk.MemberRequest	true	"Member"
//	@Success		201		{object}	gymsdk.MemberResponse	"created member"
//	@Failure		400		{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/members [post].
func (h *MembersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req gymsdk.MemberRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalidRequest(w, err.Error())
		return
	}

	m, err := h.MemberService.CreateMember(r.Context(), service.CreateMemberRequest{
		Name:     req.Name,
		Lastname: req.Lastname,
		Email:    req.Email,
	})
	if err != nil {
		writeServiceError(w, r, err, "Failed to create member")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, memberResponse(m))
}

// HandleGet handles GET /v1/members/{id}
//
//	@Summary		Get Member
//	@Description	Returns a member with its derived current flag.
//	@Tags			Members
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"Member ID (ULID)"
//	@Success		200	{object}	gymsdk.MemberResponse	"member"
//	@Failure		401	{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/members/{id} [get].
func (h *MembersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}

	m, err := h.MemberService.GetMember(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load member")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, memberResponse(m))
}

// HandleList handles GET /v1/members
//
//	@Summary		List Members
//	@Description	Pages through members by id, optionally filtered by stored billing state.
//	@Tags			Members
//	@Produce		json
//	@Security		BearerAuth
//	@Param			state	query		string						false	"OK, pending or defeated"
//	@Param			limit	query		int							false	"Page size (1-500, default 50)"
//	@Param			after	query		string						false	"Cursor from a previous page"
//	@Success		200		{object}	gymsdk.MemberListResponse	"members, next"
//	@Failure		400		{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	gymsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	opts, ok := listOptions(r)
	if !ok {
		writeInvalidRequest(w, "limit must be a positive integer")
		return
	}

	state := domain.BillingState(r.URL.Query().Get("state"))
	members, err := h.MemberService.ListMembers(r.Context(), state, opts)
	if err != nil {
		writeServiceError(w, r, err, "Failed to list members")
		return
	}

	out := gymsdk.MemberListResponse{Members: make([]gymsdk.MemberResponse, 0, len(members))}
	for _, m := range members {
		out.Members = append(out.Members, memberResponse(m))
	}
	out.Next = nextCursor(opts, len(members), func() string { return members[len(members)-1].ID })

	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleAttendance handles GET /v1/members/{id}/attendance
//
//	@Summary		Attendance History
//	@Description	Returns a member's check-ins, oldest first.
//	@Tags			Attendance
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Member ID (ULID)"
//	@Param			limit	query		int								false	"Page size (1-500, default 50)"
//	@Param			after	query		string							false	"Cursor from a previous page"
//	@Success		200		{object}	gymsdk.AttendanceListResponse	"records, next"
//	@Failure		400		{object}	gymsdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	gymsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	gymsdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	gymsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	gymsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/members/{id}/attendance [get].
func (h *MembersHandler) HandleAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}
	opts, ok := listOptions(r)
	if !ok {
		writeInvalidRequest(w, "limit must be a positive integer")
		return
	}

	records, err := h.AttendanceService.ListAttendance(r.Context(), id, opts)
	if err != nil {
		writeServiceError(w, r, err, "Failed to list attendance")
		return
	}

	out := gymsdk.AttendanceListResponse{Records: make([]gymsdk.AttendanceResponse, 0, len(records))}
	for _, rec := range records {
		out.Records = append(out.Records, attendanceResponse(rec))
	}
	out.Next = nextCursor(opts, len(records), func() string { return records[len(records)-1].ID })

	httpx.WriteJSON(w, http.StatusOK, out)
}
