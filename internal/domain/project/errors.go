package project

import "errors"

var (
	// ErrCommentIndex indicates a comment index outside the current slice.
	ErrCommentIndex = errors.New("comment index out of range")
	// ErrInvalidInput indicates invalid record input.
	ErrInvalidInput = errors.New("invalid project input")
)
