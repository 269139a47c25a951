package virtual

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidGeometry is returned when the inputs describe an impossible
// surface: a non-positive row height, negative sizes or counts, or widths
// that are not finite numbers.
const ErrInvalidGeometry = constError("invalid geometry")
