package roster

import "errors"

// FormatHint is the message shown when an import cannot be read.
const FormatHint = "Failed to parse CSV. Please ensure format is: Name,Email,Department,Session Date,Time"

// ErrMalformed indicates the uploaded text could not be processed at all.
var ErrMalformed = errors.New(FormatHint)
