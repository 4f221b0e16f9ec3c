package documents

import "errors"

var (
	ErrMissingFile  = errors.New("no file provided")
	ErrEmptyFile    = errors.New("empty file provided")
	ErrInvalidInput = errors.New("invalid input")
	ErrIngestion    = errors.New("ingestion failed")
	ErrTimeout      = errors.New("upload timed out")
	ErrNotFound     = errors.New("document not found")
)
