package insights

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyDocument  = errors.New("the document is empty or could not be processed")
	ErrMissingInput   = errors.New("missing required input")
	ErrUnknownFeature = errors.New("unknown feature")
)

func missingInput(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingInput, field)
}
