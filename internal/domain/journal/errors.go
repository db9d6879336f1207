package journal

import "errors"

// ErrInvalidInput indicates a nil or unlabeled entry.
var ErrInvalidInput = errors.New("invalid journal entry")
