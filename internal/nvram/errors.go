package nvram

import (
	"errors"

	"github.com/ayoisaiah/hypnos/internal/apperr"
	"github.com/ayoisaiah/hypnos/internal/record"
)

var (
	// ErrBlank means the EEPROM region has never been written.
	ErrBlank = &apperr.Error{
		Message: "no timetable has been stored yet",
	}

	ErrChecksum = &apperr.Error{
		Message: "stored block is corrupt: checksum %#04x, expected %#04x",
	}

	ErrVersion = &apperr.Error{
		Message: "stored block has schema version %d, expected %d",
	}

	ErrSchemaMismatch = &apperr.Error{
		Message: "stored block is %d bytes, schema needs %d",
	}

	ErrRegionTooLarge = &apperr.Error{
		Message: "a %d byte block at offset %d does not fit in %d bytes of user EEPROM",
	}
)

// IsCorrupt reports whether err means the stored block could not be trusted,
// as opposed to the device failing to read or write it.
func IsCorrupt(err error) bool {
	for _, target := range []error{
		ErrBlank,
		ErrChecksum,
		ErrVersion,
		ErrSchemaMismatch,
		record.ErrBufferTooSmall,
		record.ErrFieldTooLarge,
		record.ErrReplaceField,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
