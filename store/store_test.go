package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/hypnos/internal/device"
	"github.com/ayoisaiah/hypnos/internal/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(filepath.Join(t.TempDir(), "hypnos.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func TestEEPROMReadWrite(t *testing.T) {
	c := newTestClient(t)

	buf := make([]byte, device.UserEEPROMSize)
	require.NoError(t, c.ReadEEPROM(0, buf))
	assert.Equal(t, make([]byte, device.UserEEPROMSize), buf)

	require.NoError(t, c.WriteEEPROM(4, []byte{1, 2, 3}))

	part := make([]byte, 5)
	require.NoError(t, c.ReadEEPROM(3, part))
	assert.Equal(t, []byte{0, 1, 2, 3, 0}, part)

	require.NoError(t, c.EraseEEPROM())
	require.NoError(t, c.ReadEEPROM(3, part))
	assert.Equal(t, make([]byte, 5), part)
}

func TestEEPROMBounds(t *testing.T) {
	c := newTestClient(t)

	assert.ErrorIs(t, c.WriteEEPROM(42, []byte{1, 2}), errEEPROMRange)
	assert.ErrorIs(t, c.ReadEEPROM(0, make([]byte, device.UserEEPROMSize+1)), errEEPROMRange)
	assert.NoError(t, c.WriteEEPROM(42, []byte{1}))
}

func TestDeviceState(t *testing.T) {
	c := newTestClient(t)

	state, err := c.DeviceState()
	require.NoError(t, err)
	assert.Equal(t, &models.DeviceState{}, state)

	want := &models.DeviceState{
		Alarm:         &models.Alarm{Hour: 22, Minute: 30, Mode: device.AlarmModeHoursMinutes},
		ClockOffset:   -3600,
		TimerDeadline: 1700000000,
		ScheduleWake:  true,
		ComputerOn:    true,
	}
	require.NoError(t, c.UpdateDeviceState(want))

	got, err := c.DeviceState()
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestGetBoots(t *testing.T) {
	c := newTestClient(t)

	start := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	for i := range 5 {
		rec := &models.BootRecord{
			Time:   start.Add(time.Duration(i) * time.Hour),
			Reason: "user_input",
			Rule:   "none",
		}
		require.NoError(t, c.SaveBoot(rec))
	}

	boots, err := c.GetBoots(start.Add(time.Hour), start.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, boots, 3)

	for i, b := range boots {
		assert.True(t, b.Time.Equal(start.Add(time.Duration(i+1)*time.Hour)))
	}
}

func TestMigrateEEPROM(t *testing.T) {
	c := newTestClient(t)

	err := c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(eepromBucket)).Put(eepromKey, []byte{9, 9})
	})
	require.NoError(t, err)

	require.NoError(t, c.Update(c.migrate))

	err = c.View(func(tx *bolt.Tx) error {
		image := tx.Bucket([]byte(eepromBucket)).Get(eepromKey)
		assert.Len(t, image, device.UserEEPROMSize)
		assert.Equal(t, []byte{9, 9, 0}, image[:3])

		return nil
	})
	require.NoError(t, err)
}

func TestSecondClientIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hypnos.db")

	c, err := NewClient(path)
	require.NoError(t, err)

	defer c.Close()

	_, err = NewClient(path)
	assert.ErrorIs(t, err, errHypnosRunning)
}
