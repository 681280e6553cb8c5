package domain

import "errors"

var (
	// ErrInvalidToken rejects a retrieval token before any filesystem access.
	ErrInvalidToken = errors.New("invalid filename")
	// ErrNotFound signals a token whose file was never written or already deleted.
	ErrNotFound = errors.New("file not found")
	// ErrRender wraps unexpected failures while encoding a document.
	ErrRender = errors.New("render failed")
	// ErrCleanup wraps best-effort deletion failures. It is logged, never returned to clients.
	ErrCleanup = errors.New("cleanup failed")
)
