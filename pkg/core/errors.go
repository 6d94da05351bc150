package core

import "errors"

// Common errors.
var (
	ErrNotFound    = errors.New("file not found")
	ErrCollision   = errors.New("target path already exists")
	ErrOutOfScope  = errors.New("path is outside the content scope")
	ErrInvalidName = errors.New("identifier does not form a valid file name")
	ErrNoBaseline  = errors.New("no baseline revision available")
)
