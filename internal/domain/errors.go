package domain

import "errors"

// ErrNotFound is returned by collection and repo lookups when the requested
// waypoint or route does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when a field value fails a domain constraint
// (length limit, coordinate bounds, malformed paired fields, unsupported
// enum value). Mutations that fail validation are never partially applied.
var ErrValidation = errors.New("validation error")

// ErrCapacity is returned at encode time when a value exceeds a
// format-specific limit (FPL flight-plan index above 98, more than 3000
// route points). These limits belong to the output format, not the model,
// so they are not enforced earlier.
var ErrCapacity = errors.New("capacity error")

// ErrSchemaValidation is returned when the external XML schema validator
// rejects an encoded document. The wrapped message carries the validator's
// diagnostic output verbatim.
var ErrSchemaValidation = errors.New("schema validation failed")
