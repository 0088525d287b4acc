// Package nvram persists a record schema into the clock's user EEPROM.
//
// The block written at the configured offset is
//
//	[version:1][payload:SizeToStore][crc16:2]
//
// where the checksum is CRC-16/ARC over version and payload, stored
// little-endian. Every Save rewrites the whole block.
package nvram

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/sigurn/crc16"

	"github.com/ayoisaiah/hypnos/internal/device"
	"github.com/ayoisaiah/hypnos/internal/record"
)

const (
	versionSize  = 1
	checksumSize = 2
)

var crcTable = crc16.MakeTable(crc16.CRC16_ARC)

// Store reads and writes one schema at a fixed EEPROM offset.
type Store struct {
	dev    device.EEPROM
	offset uint8
}

// New returns a store writing at offset.
func New(dev device.EEPROM, offset uint8) *Store {
	return &Store{
		dev:    dev,
		offset: offset,
	}
}

// BlockSize returns the number of EEPROM bytes used for schema.
func BlockSize(schema *record.Schema) int {
	return versionSize + schema.SizeToStore() + checksumSize
}

// Fits reports an error when schema cannot be stored at the configured
// offset.
func (s *Store) Fits(schema *record.Schema) error {
	size := BlockSize(schema)
	if int(s.offset)+size > device.UserEEPROMSize {
		return ErrRegionTooLarge.Fmt(size, s.offset, device.UserEEPROMSize)
	}

	return nil
}

// Encode builds the block for schema without touching the device.
func Encode(schema *record.Schema) []byte {
	buf := make([]byte, 0, BlockSize(schema))

	buf = append(buf, schema.Version)
	buf = append(buf, schema.Marshal()...)
	buf = binary.LittleEndian.AppendUint16(buf, crc16.Checksum(buf, crcTable))

	return buf
}

// Save serializes every field of schema and writes the block.
func (s *Store) Save(schema *record.Schema) error {
	if err := s.Fits(schema); err != nil {
		return err
	}

	if err := s.dev.WriteUserEEPROM(s.offset, Encode(schema)); err != nil {
		return fmt.Errorf("writing %d bytes at %#02x: %w", BlockSize(schema), s.offset, err)
	}

	return nil
}

// Load reads the block and restores every field of schema. When the block
// is blank, carries another schema version, or fails its checksum, nothing
// is restored and the fields keep their current values.
func (s *Store) Load(schema *record.Schema) error {
	block, err := s.Read(schema)
	if err != nil {
		return err
	}

	return Decode(schema, block)
}

// Read returns the raw block without decoding it.
func (s *Store) Read(schema *record.Schema) ([]byte, error) {
	if err := s.Fits(schema); err != nil {
		return nil, err
	}

	block := make([]byte, BlockSize(schema))

	if err := s.dev.ReadUserEEPROM(s.offset, block); err != nil {
		return nil, fmt.Errorf("reading %d bytes at %#02x: %w", len(block), s.offset, err)
	}

	return block, nil
}

// Decode verifies block and restores schema from it.
func Decode(schema *record.Schema, block []byte) error {
	if len(block) != BlockSize(schema) {
		return ErrSchemaMismatch.Fmt(len(block), BlockSize(schema))
	}

	if isBlank(block) {
		return ErrBlank
	}

	body := block[:len(block)-checksumSize]
	want := binary.LittleEndian.Uint16(block[len(body):])

	if got := crc16.Checksum(body, crcTable); got != want {
		return ErrChecksum.Fmt(got, want)
	}

	if body[0] != schema.Version {
		return ErrVersion.Fmt(body[0], schema.Version)
	}

	return schema.Deserialize(body[versionSize:])
}

func isBlank(block []byte) bool {
	return len(bytes.Trim(block, "\x00")) == 0 ||
		len(bytes.Trim(block, "\xff")) == 0
}
