package brush

import (
	"errors"

	"github.com/gogpu/brush/internal/abr"
	"github.com/gogpu/brush/internal/packbits"
	"github.com/gogpu/brush/internal/stream"
)

// Errors reported by Decode, either returned or listed in
// Collection.Warnings. Compare with errors.Is.
var (
	// ErrTruncatedInput means a read ran past the end of the buffer.
	ErrTruncatedInput = stream.ErrTruncatedInput

	// ErrOutOfRange means a seek or a computed offset fell outside the buffer.
	ErrOutOfRange = stream.ErrOutOfRange

	// ErrCorruptRun means a PackBits run did not fit its scanline budget.
	ErrCorruptRun = packbits.ErrCorruptRun

	// ErrCorruptRecord marks a malformed record. As a warning the record was
	// skipped; as an error decoding stopped at that record.
	ErrCorruptRecord = abr.ErrCorruptRecord

	// ErrUnsupportedVersion means the archive version is not 1, 2 or 6.
	ErrUnsupportedVersion = abr.ErrUnsupportedVersion

	// ErrEmptyCollection means the archive declares no brushes.
	ErrEmptyCollection = abr.ErrEmptyCollection

	// ErrUnsupportedBrushType marks a skipped computed brush record.
	ErrUnsupportedBrushType = abr.ErrUnsupportedBrushType

	// ErrUnreadable wraps every Decode failure that produced no tips.
	ErrUnreadable = errors.New("brush: unsupported or unreadable brush data")
)
