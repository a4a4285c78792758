package template

import "errors"

// ErrUnknown indicates a template was requested for an unrecognized category name.
var ErrUnknown = errors.New("unknown template")
