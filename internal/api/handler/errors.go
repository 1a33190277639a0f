package handler

import (
	"net/http"

	"github.com/mcoot/battleship-go2/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeInvalidPosition    = apierr.CodeInvalidPosition
	CodeInvalidPlacement   = apierr.CodeInvalidPlacement
	CodePlacementFailed    = apierr.CodePlacementFailed
	CodeUnknownShipType    = apierr.CodeUnknownShipType
	CodeShipAlreadyPlaced  = apierr.CodeShipAlreadyPlaced
	CodeNotGameOwner       = apierr.CodeNotGameOwner
	CodeGameNotFound       = apierr.CodeGameNotFound
	CodeNoActiveGame       = apierr.CodeNoActiveGame
	CodePlayerNotFound     = apierr.CodePlayerNotFound
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeUsernameExists     = apierr.CodeUsernameExists
	CodeInvalidUsername    = apierr.CodeInvalidUsername
	CodeWeakPassword       = apierr.CodeWeakPassword
	CodeInvalidDisplayName = apierr.CodeInvalidDisplayName
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
