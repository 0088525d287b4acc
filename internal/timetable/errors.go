package timetable

import "github.com/ayoisaiah/hypnos/internal/apperr"

var (
	// ErrExceptionListFull is returned by Push when every slot is taken.
	ErrExceptionListFull = &apperr.Error{
		Message: "exception list is full (%d entries)",
	}

	// ErrInvalidLength is returned when a raw value has a length that the
	// field cannot hold. Nothing is modified when it is returned.
	ErrInvalidLength = &apperr.Error{
		Message: "invalid length %d for %s",
	}

	ErrUnknownCharacteristic = &apperr.Error{
		Message: "unknown characteristic: %s",
	}

	errInvalidHourMinute = &apperr.Error{
		Message: "invalid time of day %q (expected HH:MM)",
	}

	ErrCurfewOrder = &apperr.Error{
		Message: "morning curfew (%s) must be earlier than night curfew (%s)",
	}

	ErrZeroDuration = &apperr.Error{
		Message: "%s length must be at least one minute",
	}

	errInvalidWindow = &apperr.Error{
		Message: "exception ends (%d) before it starts (%d)",
	}
)
