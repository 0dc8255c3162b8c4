package ecc

// DistributionMatrixKind selects which systematic distribution matrix
// construction a Coder uses.
type DistributionMatrixKind int

const (
	// Vandermonde is the default construction: a Vandermonde matrix with
	// its top square inverted into the identity.
	Vandermonde DistributionMatrixKind = iota

	// Cauchy builds a systematic Cauchy-matrix-based code instead. Also
	// systematic and also satisfies the any-D-of-D+P invertibility
	// invariant.
	Cauchy
)

type options struct {
	matrixKind DistributionMatrixKind
}

// Option configures a Coder at construction time.
type Option func(*options)

// WithDistributionMatrix selects the distribution matrix construction.
// The default, used when no Option is supplied, is Vandermonde.
func WithDistributionMatrix(kind DistributionMatrixKind) Option {
	return func(o *options) { o.matrixKind = kind }
}
