package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/gymtab/internal/gym/service"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/aussiebroadwan/gymtab/pkg/httpx"
	"github.com/aussiebroadwan/gymtab/pkg/idx"
	"github.com/aussiebroadwan/gymtab/pkg/slogx"
)

// writeServiceError maps a service failure onto the error envelope.
// Internal failures are logged and never echoed to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch service.KindOf(err) {
	case service.KindNotFound:
		httpx.WriteError(w, http.StatusNotFound, service.CodeOf(err), err.Error())
	case service.KindBadRequest:
		httpx.WriteError(w, http.StatusBadRequest, service.CodeOf(err), err.Error())
	case service.KindForbidden:
		httpx.WriteError(w, http.StatusForbidden, service.CodeOf(err), err.Error())
	default:
		slogx.FromContext(r.Context()).Error(msg, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, gymsdk.ErrorCodeServerError, msg)
	}
}

// memberID reads the {id} path value in canonical form. Malformed ids are
// answered with 404 without touching the store.
func memberID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, gymsdk.ErrorCodeNotFound, service.ErrMemberNotFound.Error())
		return "", false
	}
	return id.String(), true
}

func writeInvalidRequest(w http.ResponseWriter, desc string) {
	httpx.WriteError(w, http.StatusBadRequest, gymsdk.ErrorCodeInvalidRequest, desc)
}

// listOptions reads ?limit= and ?after=.
func listOptions(r *http.Request) (store.ListOptions, bool) {
	opts := store.ListOptions{After: r.URL.Query().Get("after")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return opts, false
		}
		opts.Limit = n
	}
	return opts.Normalize(), true
}

// nextCursor returns the id to resume after when the page came back full.
func nextCursor(opts store.ListOptions, n int, lastID func() string) string {
	if n == 0 || n < opts.Limit {
		return ""
	}
	return lastID()
}
