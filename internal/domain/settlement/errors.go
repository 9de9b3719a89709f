package settlement

import "errors"

var (
	// ErrParseFailed aborts the whole run: nothing from other files is
	// merged when any upload cannot be parsed.
	ErrParseFailed = errors.New("uploaded file could not be parsed")

	ErrNoUploads = errors.New("no files uploaded")
)
