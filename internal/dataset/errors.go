package dataset

import "errors"

var (
	// ErrConfiguration reports invalid engine parameters: k, folds or an
	// empty dataset.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrDegenerateColumn reports a real-valued column with zero range.
	ErrDegenerateColumn = errors.New("real-valued column has zero range")
	// ErrArityMismatch reports a point whose feature counts disagree with the
	// dataset's declared arity.
	ErrArityMismatch = errors.New("feature arity mismatch")

	ErrMalformed        = errors.New("malformed dataset")
	ErrUnknownAttribute = errors.New("unknown attribute")
)
