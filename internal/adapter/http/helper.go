package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	accountDomain "lending-engine/internal/domain/account"
	loanDomain "lending-engine/internal/domain/loan"
	paymentDomain "lending-engine/internal/domain/payment"
	"lending-engine/internal/usecase/lifecycle"
)

// writeError maps domain/usecase failures onto HTTP responses. Every
// precondition failure carries a stable machine-readable code so clients can
// branch on the condition, not on message text.
func writeError(c echo.Context, err error) error {
	var ve *lifecycle.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Code:    "validation",
			Details: []FieldError{{Field: ve.Field, Message: ve.Message}},
		})
	case errors.Is(err, loanDomain.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found", Code: "not_found"})
	case errors.Is(err, loanDomain.ErrAlreadyApproved):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "loan already approved", Code: "already_approved"})
	case errors.Is(err, loanDomain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "invalid loan state transition", Code: "invalid_transition"})
	case errors.Is(err, paymentDomain.ErrLoanNotActive):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "wrong_state"})
	case errors.Is(err, paymentDomain.ErrNonPositiveAmount):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "non_positive_amount"})
	case errors.Is(err, paymentDomain.ErrBelowMinimum):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "below_minimum"})
	case errors.Is(err, paymentDomain.ErrExceedsBalance):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "exceeds_balance"})
	case errors.Is(err, accountDomain.ErrInsufficientFunds):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "insufficient_funds"})
	case errors.Is(err, accountDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "account not found", Code: "account_not_found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "internal"})
	}
}
