package timetable

import (
	"encoding/binary"
	"time"
)

// MaxExceptions is the number of exception windows the device can hold.
const MaxExceptions = 4

// exceptionSize is the encoded size of one TimeException: two little-endian
// uint32 values.
const exceptionSize = 8

// TimeException is a closed interval [Start, End] in unix seconds during
// which the curfew and break rules do not apply.
type TimeException struct {
	Start uint32 `json:"start" yaml:"start"`
	End   uint32 `json:"end"   yaml:"end"`
}

// NewTimeException builds an exception covering from to to.
func NewTimeException(from, to time.Time) (TimeException, error) {
	e := TimeException{
		Start: uint32(from.Unix()),
		End:   uint32(to.Unix()),
	}

	if e.End < e.Start {
		return TimeException{}, errInvalidWindow.Fmt(e.End, e.Start)
	}

	return e, nil
}

// Contains reports whether now falls inside the window. Both ends are
// inclusive.
func (e TimeException) Contains(now uint32) bool {
	return now >= e.Start && now <= e.End
}

// StartTime returns the start of the window as a time.Time.
func (e TimeException) StartTime() time.Time {
	return time.Unix(int64(e.Start), 0)
}

// EndTime returns the end of the window as a time.Time.
func (e TimeException) EndTime() time.Time {
	return time.Unix(int64(e.End), 0)
}

// ExceptionList is a fixed-capacity, insertion-ordered list of exception
// windows. Entries are neither sorted nor deduplicated.
type ExceptionList struct {
	entries [MaxExceptions]TimeException
	n       int
}

// Len returns the number of stored exceptions.
func (l *ExceptionList) Len() int {
	return l.n
}

func (l *ExceptionList) IsFull() bool {
	return l.n == MaxExceptions
}

func (l *ExceptionList) IsEmpty() bool {
	return l.n == 0
}

// Clear removes every exception.
func (l *ExceptionList) Clear() {
	l.n = 0
}

// Push appends e. The list is left untouched when it is full.
func (l *ExceptionList) Push(e TimeException) error {
	if l.IsFull() {
		return ErrExceptionListFull.Fmt(MaxExceptions)
	}

	l.entries[l.n] = e
	l.n++

	return nil
}

// Get returns the exception at index i.
func (l *ExceptionList) Get(i int) (TimeException, bool) {
	if i < 0 || i >= l.n {
		return TimeException{}, false
	}

	return l.entries[i], true
}

// All returns a copy of the stored exceptions in insertion order.
func (l *ExceptionList) All() []TimeException {
	out := make([]TimeException, l.n)
	copy(out, l.entries[:l.n])

	return out
}

// Contains reports whether any exception window contains now.
func (l *ExceptionList) Contains(now uint32) bool {
	_, ok := l.Active(now)
	return ok
}

// Active returns the first exception that contains now. Overlapping windows
// are not merged, so the earliest inserted match wins.
func (l *ExceptionList) Active(now uint32) (TimeException, bool) {
	for i := range l.n {
		if l.entries[i].Contains(now) {
			return l.entries[i], true
		}
	}

	return TimeException{}, false
}

// Equal reports whether both lists hold the same exceptions in the same
// order.
func (l *ExceptionList) Equal(other *ExceptionList) bool {
	if l.n != other.n {
		return false
	}

	for i := range l.n {
		if l.entries[i] != other.entries[i] {
			return false
		}
	}

	return true
}

// Bytes returns the raw concatenation of (start, end) records. This is both
// the characteristic wire format and the stored format.
func (l *ExceptionList) Bytes() []byte {
	buf := make([]byte, 0, l.Size())

	for i := range l.n {
		buf = binary.LittleEndian.AppendUint32(buf, l.entries[i].Start)
		buf = binary.LittleEndian.AppendUint32(buf, l.entries[i].End)
	}

	return buf
}

// Size returns the encoded length of the stored exceptions.
func (l *ExceptionList) Size() int {
	return l.n * exceptionSize
}

// MaxSize returns the encoded length of a full list.
func (l *ExceptionList) MaxSize() int {
	return MaxExceptions * exceptionSize
}

func (l *ExceptionList) Variable() bool {
	return true
}

// Replace repopulates the list from buf. It is all-or-nothing: when len(buf)
// is not a whole number of records or exceeds the capacity, the list keeps
// its previous contents.
func (l *ExceptionList) Replace(buf []byte) error {
	if len(buf) > l.MaxSize() || len(buf)%exceptionSize != 0 {
		return ErrInvalidLength.Fmt(len(buf), "exception list")
	}

	l.Clear()

	for off := 0; off < len(buf); off += exceptionSize {
		l.entries[l.n] = TimeException{
			Start: binary.LittleEndian.Uint32(buf[off:]),
			End:   binary.LittleEndian.Uint32(buf[off+4:]),
		}
		l.n++
	}

	return nil
}
