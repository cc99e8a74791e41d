package planner

// Error types attached to errors returned by the planner. Use errors.IsType
// from github.com/aukilabs/go-tooling/pkg/errors to test for them.
const (
	ErrTypeInvalidConfiguration = "invalid-configuration"
	ErrTypeDegenerateObstacle   = "degenerate-obstacle"
	ErrTypeNoPathFound          = "no-path-found"
)
