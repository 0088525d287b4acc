package store

import (
	"time"

	"github.com/ayoisaiah/hypnos/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// ReadEEPROM fills buf from the user EEPROM image starting at addr
	ReadEEPROM(addr uint8, buf []byte) error
	// WriteEEPROM writes data into the user EEPROM image starting at addr
	WriteEEPROM(addr uint8, data []byte) error
	// EraseEEPROM resets the image to its factory state
	EraseEEPROM() error
	DeviceState() (*models.DeviceState, error)
	UpdateDeviceState(state *models.DeviceState) error
	// SaveBoot records a completed wake cycle
	SaveBoot(rec *models.BootRecord) error
	// GetBoots returns the wake cycles recorded in the given period
	GetBoots(since, until time.Time) ([]models.BootRecord, error)
	// Close ends the database connection
	Close() error
	// Open begins a databse connection
	Open() error
}
