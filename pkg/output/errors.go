package output

import "errors"

// ErrUnsupportedFormat is returned for an image format with no encoder
var ErrUnsupportedFormat = errors.New("unsupported output format")
