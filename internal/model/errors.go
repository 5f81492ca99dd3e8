package model

import "errors"

// Sentinel errors. Use errors.Is to check: errors.Is(err, model.ErrNotFound)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("knowledge point not found")
	ErrStorageCorrupt  = errors.New("storage corrupt")
	ErrStorageFull     = errors.New("storage full")
	ErrDueQueueEmpty   = errors.New("no knowledge points due for review")
)
