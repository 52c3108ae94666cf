package service

import "errors"

var (
	ErrIDRequired       = errors.New("id is required")
	ErrNotFound         = errors.New("media not found")
	ErrReaderNil        = errors.New("reader is nil")
	ErrFilenameRequired = errors.New("filename is required")
	ErrUnknownGlobal    = errors.New("unknown global")
	ErrNameExhausted    = errors.New("no free filename variant")
)
