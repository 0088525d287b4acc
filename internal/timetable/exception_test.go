package timetable

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullList(t *testing.T) *ExceptionList {
	t.Helper()

	var l ExceptionList

	for i := range MaxExceptions {
		start := uint32(i * 2)
		require.NoError(t, l.Push(TimeException{Start: start, End: start + 1}))
	}

	return &l
}

func encode(records ...uint32) []byte {
	var buf []byte
	for _, r := range records {
		buf = binary.LittleEndian.AppendUint32(buf, r)
	}

	return buf
}

func TestExceptionListPush(t *testing.T) {
	l := fullList(t)

	for i := range MaxExceptions {
		e, ok := l.Get(i)
		require.True(t, ok)
		assert.Equal(t, TimeException{Start: uint32(i * 2), End: uint32(i*2 + 1)}, e)
	}

	err := l.Push(TimeException{Start: 100, End: 101})
	assert.ErrorIs(t, err, ErrExceptionListFull)
	assert.Equal(t, MaxExceptions, l.Len())
}

func TestExceptionListGet(t *testing.T) {
	var l ExceptionList

	require.True(t, l.IsEmpty())

	_, ok := l.Get(0)
	assert.False(t, ok)

	require.NoError(t, l.Push(TimeException{Start: 5, End: 10}))

	e, ok := l.Get(0)
	require.True(t, ok)
	assert.Equal(t, TimeException{Start: 5, End: 10}, e)

	_, ok = l.Get(1)
	assert.False(t, ok)

	_, ok = l.Get(-1)
	assert.False(t, ok)
}

func TestExceptionListReplace(t *testing.T) {
	table := []struct {
		name    string
		buf     []byte
		want    []TimeException
		wantErr bool
	}{
		{
			name: "full buffer",
			buf:  encode(8, 9, 10, 11, 12, 13, 14, 15),
			want: []TimeException{{8, 9}, {10, 11}, {12, 13}, {14, 15}},
		},
		{
			name: "fewer records",
			buf:  encode(40000, 90000),
			want: []TimeException{{40000, 90000}},
		},
		{
			name: "empty buffer",
			buf:  []byte{},
			want: []TimeException{},
		},
		{
			name:    "too many records",
			buf:     encode(0, 0, 0, 0, 0, 0, 0, 0, 0, 0),
			wantErr: true,
		},
		{
			name:    "partial record",
			buf:     encode(0, 0, 0, 0, 0, 0, 0),
			wantErr: true,
		},
		{
			name:    "odd byte count",
			buf:     []byte{1, 2, 3},
			wantErr: true,
		},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			l := fullList(t)
			before := l.All()

			err := l.Replace(tc.buf)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLength)

				e, ok := l.Get(0)
				require.True(t, ok)
				assert.Equal(t, TimeException{Start: 0, End: 1}, e)

				if diff := cmp.Diff(before, l.All()); diff != "" {
					t.Errorf("list changed after failed replace (-before +after):\n%s", diff)
				}

				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(tc.want, l.All()); diff != "" {
				t.Errorf("unexpected entries (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExceptionListRoundTrip(t *testing.T) {
	table := [][]TimeException{
		{},
		{{2222, 3333}},
		{{2222, 3333}, {40000, 90000}},
		{{1, 2}, {3, 4}, {5, 6}, {7, 8}},
		{{1111, 55555}, {1111, 55555}, {44, 90}},
	}

	for _, exceptions := range table {
		var l ExceptionList
		for _, e := range exceptions {
			require.NoError(t, l.Push(e))
		}

		b := l.Bytes()
		assert.Len(t, b, l.Size())

		var restored ExceptionList
		require.NoError(t, restored.Replace(b))

		assert.True(t, l.Equal(&restored))
	}
}

func TestExceptionListActive(t *testing.T) {
	var l ExceptionList

	require.NoError(t, l.Push(TimeException{Start: 100, End: 200}))
	require.NoError(t, l.Push(TimeException{Start: 150, End: 400}))

	table := []struct {
		now   uint32
		want  TimeException
		found bool
	}{
		{99, TimeException{}, false},
		{100, TimeException{100, 200}, true},
		{175, TimeException{100, 200}, true},
		{200, TimeException{100, 200}, true},
		{201, TimeException{150, 400}, true},
		{400, TimeException{150, 400}, true},
		{401, TimeException{}, false},
	}

	for _, v := range table {
		got, ok := l.Active(v.now)
		assert.Equal(t, v.found, ok, "now=%d", v.now)
		assert.Equal(t, v.want, got, "now=%d", v.now)
		assert.Equal(t, v.found, l.Contains(v.now), "now=%d", v.now)
	}
}
