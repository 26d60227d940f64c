package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chainboard/job-board-api/internal/core/domain"
	"github.com/chainboard/job-board-api/internal/core/ports"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrTxNotFound):
		return http.StatusBadRequest, "transaction not found on ledger"
	case errors.Is(err, domain.ErrTxNotConfirmed):
		return http.StatusBadRequest, "transaction did not succeed on ledger"
	case errors.Is(err, domain.ErrWrongRecipient):
		return http.StatusBadRequest, "payment sent to wrong recipient"
	case errors.Is(err, domain.ErrWrongAmount):
		return http.StatusBadRequest, "payment amount does not match the platform fee"
	case errors.Is(err, domain.ErrClaimInProgress):
		return http.StatusConflict, "a payment claim for this job is already being processed"
	case errors.Is(err, domain.ErrDoublePayment):
		return http.StatusConflict, "job payment is already confirmed with a different transaction"
	case errors.Is(err, domain.ErrLedgerUnavailable):
		return http.StatusBadGateway, "ledger is unavailable, try again later"
	case errors.Is(err, ports.ErrUnparseableResponse):
		return http.StatusBadGateway, "model returned an unusable response"
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, "job not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
