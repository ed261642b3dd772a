package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = errors.New("board not found")

	// ErrBoardExists is returned when a board id is already taken
	ErrBoardExists = errors.New("board already exists")

	// ErrMessageNotFound is returned when a message is not found on its board
	ErrMessageNotFound = errors.New("message not found")
)
