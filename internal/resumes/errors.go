package resumes

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrMissingName     = errors.New("candidate name is required")
	ErrMissingFile     = errors.New("resume file is required")
	ErrUnsupportedType = errors.New("unsupported file type")
)
