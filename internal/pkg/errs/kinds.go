package errs

import "errors"

// Stable error kinds surfaced to API consumers. Use-case errors are marked
// with exactly one of these so handlers can branch with Is.
var (
	ErrUnauthenticated    = New("unauthenticated")
	ErrForbidden          = New("forbidden")
	ErrValidation         = New("validation error")
	ErrNotFound           = New("not found")
	ErrConflict           = New("conflict")
	ErrInvalidState       = New("invalid state")
	ErrQuotaExceeded      = New("quota exceeded")
	ErrInsufficientSupply = New("insufficient supply")
	ErrInconsistentState  = New("inconsistent state")
	ErrConfiguration      = New("configuration error")
	ErrUpstream           = New("upstream error")
)

// Refinements of the base kinds. Is matches both the refinement and its base,
// while a plain base-kind error never matches a refinement.
var (
	ErrPriceNotSet = Refine(ErrConfiguration, "unit price not set")
	ErrNotOwner    = Refine(ErrForbidden, "token not held by seller")
	ErrSelfTrade   = Refine(ErrValidation, "cannot buy own listing")
)

type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// Refine returns a distinct sentinel of the given kind.
func Refine(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

// PublicMessage returns the message of the outermost refined sentinel in err's
// chain, falling back to err.Error().
func PublicMessage(err error) string {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.msg
	}
	return err.Error()
}

type Kind string

const (
	KindUnauthenticated    Kind = "unauthenticated"
	KindForbidden          Kind = "forbidden"
	KindNotOwner           Kind = "not_owner"
	KindValidation         Kind = "validation_error"
	KindSelfTrade          Kind = "self_trade"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindInvalidState       Kind = "invalid_state"
	KindQuotaExceeded      Kind = "quota_exceeded"
	KindInsufficientSupply Kind = "insufficient_supply"
	KindInconsistentState  Kind = "inconsistent_state"
	KindPriceNotSet        Kind = "price_not_set"
	KindConfiguration      Kind = "configuration_error"
	KindUpstream           Kind = "upstream_error"
	KindInternal           Kind = "internal"
)

// refinements must be checked before the base kind they are marked with.
var kindOrder = []struct {
	err  error
	kind Kind
}{
	{ErrPriceNotSet, KindPriceNotSet},
	{ErrNotOwner, KindNotOwner},
	{ErrSelfTrade, KindSelfTrade},
	{ErrUnauthenticated, KindUnauthenticated},
	{ErrForbidden, KindForbidden},
	{ErrValidation, KindValidation},
	{ErrNotFound, KindNotFound},
	{ErrConflict, KindConflict},
	{ErrInvalidState, KindInvalidState},
	{ErrQuotaExceeded, KindQuotaExceeded},
	{ErrInsufficientSupply, KindInsufficientSupply},
	{ErrInconsistentState, KindInconsistentState},
	{ErrConfiguration, KindConfiguration},
	{ErrUpstream, KindUpstream},
}

// KindOf classifies err into one of the stable kinds, KindInternal otherwise.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kindOrder {
		if Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// IsBusinessRule reports whether err is a rule violation rather than an
// infrastructure failure. Refinements of configuration and upstream errors
// count as infrastructure.
func IsBusinessRule(err error) bool {
	if err == nil || Is(err, ErrConfiguration) || Is(err, ErrUpstream) {
		return false
	}
	return KindOf(err) != KindInternal
}
