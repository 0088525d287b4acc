package config

import "github.com/ayoisaiah/hypnos/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidNow = &apperr.Error{
		Message: "unable to parse --now value %q",
	}

	errInvalidCurfew = &apperr.Error{
		Message: "%s curfew must be in HH:MM format, got %q",
	}

	errCurfewOrder = &apperr.Error{
		Message: "morning curfew (%s) must be earlier than night curfew (%s)",
	}

	errInvalidMinutes = &apperr.Error{
		Message: "%s minutes must be between %d and %d",
	}

	errInvalidTokens = &apperr.Error{
		Message: "tokens must be between 0 and %d",
	}

	errInvalidOffset = &apperr.Error{
		Message: "eeprom offset %d must be between 0 and %d",
	}

	errInvalidTimezone = &apperr.Error{
		Message: "unknown time zone %q",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "log level must be one of debug, info, warn or error, got %q",
	}

	errInvalidLogSize = &apperr.Error{
		Message: "log max size must be at least 1 MB",
	}
)
