package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionInvalid     = errors.New("session invalid")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrBackend            = errors.New("backend request failed")
	ErrUnknownScreen      = errors.New("unknown screen")
	ErrReadOnlyScreen     = errors.New("screen is read-only")
)

// Cart errors that reject an operation before any network call.
var (
	ErrCartNotFound     = errors.New("no open cart")
	ErrCartItemNotFound = errors.New("product is not in the cart")
	ErrProductNotFound  = errors.New("product not in catalog")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNoGameSelected   = errors.New("no game selected")
	ErrSubmitInProgress = errors.New("sale submission already in progress")
	ErrGamePinned       = errors.New("cart is pinned to its game")
	ErrGameNotSellable  = errors.New("game no longer accepts sales")
)

// ErrAdvisory marks stock-ceiling signals. They never mutate state and the
// caller is expected to surface a transient notice.
var ErrAdvisory = errors.New("advisory")

var (
	ErrStockCeilingReached = fmt.Errorf("%w: stock ceiling reached", ErrAdvisory)
	ErrOutOfStock          = fmt.Errorf("%w: product has no stock", ErrAdvisory)
	ErrExceedsStock        = fmt.Errorf("%w: quantity exceeds stock", ErrAdvisory)
)

// IsAdvisory reports whether err is a stock-ceiling signal.
func IsAdvisory(err error) bool {
	return errors.Is(err, ErrAdvisory)
}

// BackendError is a non-2xx answer from the club backend other than 401.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

func (e *BackendError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return ErrBackend
}
