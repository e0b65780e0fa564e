package mcp

import (
	"errors"
	"fmt"

	"github.com/wedgeworks/printdesk/internal/domain/project"
	"github.com/wedgeworks/printdesk/internal/store"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain and store errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var storageErr *store.StorageError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: err.Error(), RecoveryHint: "Check ID spelling or list_projects"}
	case errors.Is(err, store.ErrDuplicateID):
		return &APIError{Code: "DUPLICATE_PROJECT_ID", Message: err.Error(), RecoveryHint: "Pick a different id or omit it"}
	case errors.Is(err, project.ErrCommentIndex):
		return &APIError{Code: "COMMENT_INDEX_OUT_OF_RANGE", Message: err.Error(), RecoveryHint: "Fetch the project to see current comment indices"}
	case errors.Is(err, store.ErrCorruptIndex):
		return &APIError{Code: "CORRUPT_INDEX", Message: err.Error(), RecoveryHint: "A record blob is unreadable; inspect the projects directory"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.As(err, &storageErr):
		return &APIError{Code: "STORAGE_IO", Message: err.Error(), RecoveryHint: "Durable state is unchanged; retry the operation"}
	default:
		return nil
	}
}
