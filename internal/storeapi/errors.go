package storeapi

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx verdict from the backend. Detail carries the body's
// "detail" field when the body was parseable JSON, otherwise it is empty.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("store api: %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("store api: %d", e.StatusCode)
}

// Detail extracts the backend's detail message from err, falling back to the
// given generic message for transport errors and detail-less responses.
func Detail(err error, fallback string) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Detail != "" {
		return ae.Detail
	}
	return fallback
}

// IsUnauthenticated reports whether the backend rejected the session outright.
func IsUnauthenticated(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports a 404 verdict, used for absent receipts and invoices.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}
