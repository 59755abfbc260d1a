package render

import "errors"

// Package-level sentinel errors.
var (
	// ErrNilResult is returned when Render is called with a nil chart result.
	ErrNilResult = errors.New("render: nil chart result")

	// ErrEncodeImage is returned when the drawn canvas cannot be encoded
	// as PNG.
	ErrEncodeImage = errors.New("render: image encoding failed")
)
