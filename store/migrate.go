package store

import (
	"go.etcd.io/bbolt"

	"github.com/ayoisaiah/hypnos/internal/device"
)

// migrateEEPROM resizes an image written by an older build to the size of
// the user EEPROM. Extra bytes are dropped, missing bytes read as zero.
func migrateEEPROM(tx *bbolt.Tx) error {
	bucket := tx.Bucket([]byte(eepromBucket))

	image := bucket.Get(eepromKey)
	if image == nil || len(image) == device.UserEEPROMSize {
		return nil
	}

	resized := make([]byte, device.UserEEPROMSize)
	copy(resized, image)

	return bucket.Put(eepromKey, resized)
}

func (c *Client) migrate(tx *bbolt.Tx) error {
	return migrateEEPROM(tx)
}
