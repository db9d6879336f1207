package desk

import "errors"

var (
	// ErrBusy indicates an assistant request is already in flight.
	ErrBusy = errors.New("assistant request already in progress")
	// ErrEmptyPrompt indicates a blank message was submitted.
	ErrEmptyPrompt = errors.New("prompt is empty")
)
