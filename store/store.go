// Package store connects to the data store holding the simulated device: its
// user EEPROM image, its volatile state and the history of boots.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/hypnos/internal/device"
	"github.com/ayoisaiah/hypnos/internal/models"
	"github.com/ayoisaiah/hypnos/internal/timeutil"
)

const (
	eepromBucket = "eeprom"
	deviceBucket = "device"
	bootBucket   = "boots"
)

var (
	eepromKey = []byte("user")
	stateKey  = []byte("state")
)

var pathToDB string

var (
	errHypnosRunning = errors.New(
		"is hypnos already running? Only one instance can be active at a time",
	)
	errEEPROMRange = errors.New("access outside the user EEPROM")
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// ReadEEPROM copies len(buf) bytes starting at addr. A device that was
// never written reads as zeros.
func (c *Client) ReadEEPROM(addr uint8, buf []byte) error {
	if int(addr)+len(buf) > device.UserEEPROMSize {
		return errEEPROMRange
	}

	return c.View(func(tx *bolt.Tx) error {
		image := tx.Bucket([]byte(eepromBucket)).Get(eepromKey)

		clear(buf)

		if len(image) > int(addr) {
			copy(buf, image[addr:])
		}

		return nil
	})
}

// WriteEEPROM stores data starting at addr, leaving the rest of the image
// untouched.
func (c *Client) WriteEEPROM(addr uint8, data []byte) error {
	if int(addr)+len(data) > device.UserEEPROMSize {
		return errEEPROMRange
	}

	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(eepromBucket))

		image := make([]byte, device.UserEEPROMSize)
		copy(image, b.Get(eepromKey))
		copy(image[addr:], data)

		return b.Put(eepromKey, image)
	})
}

// EraseEEPROM removes the image so that the next read returns zeros.
func (c *Client) EraseEEPROM() error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(eepromBucket)).Delete(eepromKey)
	})
}

// DeviceState returns the saved device state, or a zero state on first use.
func (c *Client) DeviceState() (*models.DeviceState, error) {
	var state models.DeviceState

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(deviceBucket)).Get(stateKey)
		if len(b) == 0 {
			return nil
		}

		return json.Unmarshal(b, &state)
	})

	return &state, err
}

// UpdateDeviceState overwrites the saved device state.
func (c *Client) UpdateDeviceState(state *models.DeviceState) error {
	value, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(deviceBucket)).Put(stateKey, value)
	})
}

// SaveBoot appends a boot to the history.
func (c *Client) SaveBoot(rec *models.BootRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bootBucket)).Put(timeutil.ToKey(rec.Time), value)
	})
}

// GetBoots returns the boots recorded between since and until, oldest first.
func (c *Client) GetBoots(since, until time.Time) ([]models.BootRecord, error) {
	var boots []models.BootRecord

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(bootBucket)).Cursor()
		min := timeutil.ToKey(since)
		max := timeutil.ToKey(until)

		for k, v := cur.Seek(min); k != nil && bytes.Compare(k, max) <= 0; k, v = cur.Next() {
			var rec models.BootRecord

			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}

			boots = append(boots, rec)
		}

		return nil
	})

	return boots, err
}

func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		db,
	}

	return nil
}

// open creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errHypnosRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}

	c := &Client{
		db,
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{eepromBucket, deviceBucket, bootBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return c.migrate(tx)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}
