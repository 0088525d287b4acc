package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/hypnos/internal/record"
)

// blob is a variable field holding up to max bytes.
type blob struct {
	data []byte
	max  int
}

func (b *blob) Bytes() []byte  { return b.data }
func (b *blob) Size() int      { return len(b.data) }
func (b *blob) MaxSize() int   { return b.max }
func (b *blob) Variable() bool { return true }

func (b *blob) Replace(buf []byte) error {
	if len(buf) > b.max {
		return record.ErrFieldTooLarge.Fmt("blob", len(buf), b.max)
	}

	b.data = append([]byte(nil), buf...)

	return nil
}

func newSchema(t *testing.T, a *record.Uint8, b *blob, c *record.Uint32) *record.Schema {
	t.Helper()

	s, err := record.NewSchema(1,
		record.Entry{ID: 1, Name: "a", Field: a},
		record.Entry{ID: 2, Name: "b", Field: b},
		record.Entry{ID: 3, Name: "c", Field: c},
	)
	require.NoError(t, err)

	return s
}

func TestSizeToStore(t *testing.T) {
	a := record.Uint8(0)
	c := record.Uint32(0)
	s := newSchema(t, &a, &blob{max: 6}, &c)

	// 1 + (1 prefix + 6) + 4
	assert.Equal(t, 12, s.SizeToStore())

	assert.Equal(t, []record.Slot{
		{ID: 1, Name: "a", Offset: 0, Width: 1},
		{ID: 2, Name: "b", Offset: 1, Width: 7},
		{ID: 3, Name: "c", Offset: 8, Width: 4},
	}, s.Layout())
}

func TestSerializePadsVariableFields(t *testing.T) {
	a := record.Uint8(0xAA)
	c := record.Uint32(0x01020304)
	s := newSchema(t, &a, &blob{data: []byte{7, 8}, max: 6}, &c)

	dest := make([]byte, s.SizeToStore())
	for i := range dest {
		dest[i] = 0xFF
	}

	n, err := s.Serialize(dest)
	require.NoError(t, err)
	assert.Equal(t, len(dest), n)

	assert.Equal(t, []byte{
		0xAA,
		2, 7, 8, 0, 0, 0, 0,
		0x04, 0x03, 0x02, 0x01,
	}, dest)
}

func TestSerializeShortBuffer(t *testing.T) {
	a := record.Uint8(0)
	c := record.Uint32(0)
	s := newSchema(t, &a, &blob{max: 6}, &c)

	_, err := s.Serialize(make([]byte, 4))
	assert.ErrorIs(t, err, record.ErrBufferTooSmall)

	err = s.Deserialize(make([]byte, 4))
	assert.ErrorIs(t, err, record.ErrBufferTooSmall)
}

func TestDeserializeRoundTrip(t *testing.T) {
	a := record.Uint8(9)
	b := &blob{data: []byte{1, 2, 3}, max: 6}
	c := record.Uint32(123456)
	src := newSchema(t, &a, b, &c).Marshal()

	a2 := record.Uint8(0)
	b2 := &blob{max: 6}
	c2 := record.Uint32(0)

	require.NoError(t, newSchema(t, &a2, b2, &c2).Deserialize(src))

	assert.Equal(t, a, a2)
	assert.Equal(t, b.data, b2.data)
	assert.Equal(t, c, c2)
}

func TestDeserializeRejectsOversizedPrefix(t *testing.T) {
	a := record.Uint8(1)
	b := &blob{data: []byte{5}, max: 6}
	c := record.Uint32(2)
	s := newSchema(t, &a, b, &c)

	buf := s.Marshal()
	buf[1] = 7

	a2 := record.Uint8(0)
	b2 := &blob{max: 6}
	c2 := record.Uint32(0)

	err := newSchema(t, &a2, b2, &c2).Deserialize(buf)
	require.ErrorIs(t, err, record.ErrFieldTooLarge)
	assert.EqualValues(t, 0, a2, "no field is touched when a prefix is invalid")
}

func TestNewSchemaRejectsDuplicateIDs(t *testing.T) {
	a := record.Uint8(0)
	b := record.Uint8(0)

	_, err := record.NewSchema(1,
		record.Entry{ID: 1, Name: "a", Field: &a},
		record.Entry{ID: 1, Name: "b", Field: &b},
	)
	assert.Error(t, err)
}
