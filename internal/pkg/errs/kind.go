package errs

import "errors"

// Kind is a stable, transport-independent classification of an error.
// Callers switch on the kind instead of matching message text.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidState
	KindConflict
	KindForbidden
	KindValidation
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindInternal:     "internal",
		KindNotFound:     "not_found",
		KindInvalidState: "invalid_state",
		KindConflict:     "conflict",
		KindForbidden:    "forbidden",
		KindValidation:   "validation",
	}
}

func (k Kind) String() string {
	if s, ok := getKindStrings()[k]; ok {
		return s
	}
	return "internal"
}

// KindOf classifies err by the sentinel it wraps. Joined errors are
// classified by their first recognised member; anything unrecognised is
// KindInternal.
//
// Example:
//
//	switch errs.KindOf(err) {
//	case errs.KindNotFound:
//	    return http.StatusNotFound
//	case errs.KindConflict:
//	    return http.StatusConflict
//	}
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrVersionIsInvalid):
		return KindValidation
	default:
		return KindInternal
	}
}
