package loaders

import "errors"

// ErrInvalidScene is returned when a scene file parses but describes an
// unusable scene
var ErrInvalidScene = errors.New("invalid scene")
