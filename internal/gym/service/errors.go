package service

import (
	"errors"
	"fmt"
)

// Kind classifies service failures for callers that need to choose a
// response status.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadRequest
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindForbidden:
		return "forbidden"
	}
	return "internal"
}

// Error is a classified service failure. Code is the stable machine-readable
// identifier surfaced to API clients.
type Error struct {
	Kind Kind
	Code string
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

var (
	ErrMemberNotFound  = &Error{Kind: KindNotFound, Code: "not_found", Msg: "member not found"}
	ErrPaymentNotFound = &Error{Kind: KindNotFound, Code: "not_found", Msg: "payment not found"}
	ErrTokenNotFound   = &Error{Kind: KindNotFound, Code: "not_found", Msg: "qr token not found"}

	ErrTokenExpired        = &Error{Kind: KindBadRequest, Code: "expired_token", Msg: "qr token expired"}
	ErrOverdueFee          = &Error{Kind: KindBadRequest, Code: "overdue_fee", Msg: "Overdue fee"}
	ErrTokenRequired       = &Error{Kind: KindBadRequest, Code: "invalid_request", Msg: "qr token is required"}
	ErrTokenMemberMismatch = &Error{Kind: KindBadRequest, Code: "invalid_request", Msg: "qr token belongs to another member"}
	ErrMemberRequired      = &Error{Kind: KindBadRequest, Code: "invalid_request", Msg: "member id is required"}
	ErrInvalidMethod       = &Error{Kind: KindBadRequest, Code: "invalid_request", Msg: "unknown check-in method"}
	ErrInvalidPayment      = &Error{Kind: KindBadRequest, Code: "invalid_request", Msg: "invalid payment"}
	ErrInvalidMember       = &Error{Kind: KindBadRequest, Code: "invalid_request", Msg: "invalid member"}
	ErrInvalidSettings     = &Error{Kind: KindBadRequest, Code: "invalid_request", Msg: "invalid settings"}
	ErrEmailTaken          = &Error{Kind: KindBadRequest, Code: "invalid_request", Msg: "email already registered"}

	ErrMemberCodeSelfScan = &Error{Kind: KindForbidden, Code: "wrong_scanner", Msg: "member codes are scanned at the front desk"}
	ErrEntranceCodeAtDesk = &Error{Kind: KindForbidden, Code: "wrong_scanner", Msg: "entrance codes are scanned by the member app"}
	ErrUnknownScanner     = &Error{Kind: KindBadRequest, Code: "invalid_request", Msg: "unknown scanner"}
)

// KindOf returns the Kind of the first *Error in err's chain. Anything
// unclassified is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf returns the API error code for err.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "server_error"
}

// invalid wraps a BadRequest sentinel with the detail that failed.
func invalid(base *Error, detail string) error {
	return fmt.Errorf("%w: %s", base, detail)
}
