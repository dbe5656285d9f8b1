package domain

import "errors"

var (
	// ErrInvalidValue is returned when a PM2.5 field cannot be parsed as a decimal.
	ErrInvalidValue = errors.New("invalid numeric value")

	// ErrEmptyDataset is returned when the existing dataset has no usable values,
	// leaving nothing to derive a fallback from.
	ErrEmptyDataset = errors.New("no PM2.5 values found in existing dataset")

	// ErrMissingColumn is returned when an input file lacks a required header column.
	ErrMissingColumn = errors.New("missing required column")
)
