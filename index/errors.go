package index

import "errors"

var (
	// ErrQueryDimensionMismatch is returned when a query vector's length
	// disagrees with the index dimension. The index never truncates or pads
	// a query to fit.
	ErrQueryDimensionMismatch = errors.New("query vector dimension does not match index dimension")

	// ErrRaggedVectors is returned when build input vectors disagree in length.
	ErrRaggedVectors = errors.New("vectors must all have the same dimension")

	// ErrIdentityCountMismatch is returned when build input identities and
	// vectors disagree in count.
	ErrIdentityCountMismatch = errors.New("identity count does not match vector count")
)
