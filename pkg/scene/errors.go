package scene

import "errors"

// ErrUnknownScene is returned for a scene ID that is neither built in nor a
// discovered scene file
var ErrUnknownScene = errors.New("unknown scene")
