package abr

import "errors"

// Decode errors. Warnings on a Result wrap ErrCorruptRecord or
// ErrUnsupportedBrushType; fatal errors may wrap any of them.
var (
	ErrUnsupportedVersion   = errors.New("abr: unsupported version")
	ErrEmptyCollection      = errors.New("abr: empty collection")
	ErrCorruptRecord        = errors.New("abr: corrupt record")
	ErrUnsupportedBrushType = errors.New("abr: unsupported brush type")
)
