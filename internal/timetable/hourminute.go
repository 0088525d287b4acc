package timetable

import (
	"encoding/binary"
	"fmt"
)

const (
	hourMinuteSize = 2

	minuteBits = 6
	minuteMask = 0b111111
	hourMask   = 0b11111
)

// HourMinute packs a time of day into 16 bits as hour<<6 | minute. The hour
// and minute are not range checked: callers must keep them within 0-23 and
// 0-59.
type HourMinute uint16

// NewHourMinute packs hour and minute.
func NewHourMinute(hour, minute uint8) HourMinute {
	var hm HourMinute

	hm.Set(hour, minute)

	return hm
}

// Set replaces the stored hour and minute.
func (hm *HourMinute) Set(hour, minute uint8) {
	*hm = HourMinute(uint16(hour)<<minuteBits | uint16(minute))
}

// Get unpacks the stored hour and minute.
func (hm HourMinute) Get() (hour, minute uint8) {
	return hm.Hour(), hm.Minute()
}

func (hm HourMinute) Hour() uint8 {
	return uint8((hm >> minuteBits) & hourMask)
}

func (hm HourMinute) Minute() uint8 {
	return uint8(hm & minuteMask)
}

func (hm HourMinute) String() string {
	return fmt.Sprintf("%02d:%02d", hm.Hour(), hm.Minute())
}

// DiffTime returns the number of seconds from start to end within a single
// day. Only the sign is meaningful: a positive value means end is later than
// start. There is no handling of midnight wraparound.
func DiffTime(end, start HourMinute) int {
	return (int(end.Hour())-int(start.Hour()))*3600 +
		(int(end.Minute())-int(start.Minute()))*60
}

// ParseHourMinute parses a "HH:MM" string.
func ParseHourMinute(s string) (HourMinute, error) {
	var hour, minute uint8

	n, err := fmt.Sscanf(s, "%d:%d", &hour, &minute)
	if err != nil || n != 2 {
		return 0, errInvalidHourMinute.Fmt(s)
	}

	if hour > 23 || minute > 59 {
		return 0, errInvalidHourMinute.Fmt(s)
	}

	return NewHourMinute(hour, minute), nil
}

// Bytes returns the little-endian encoding of the packed value.
func (hm HourMinute) Bytes() []byte {
	return binary.LittleEndian.AppendUint16(nil, uint16(hm))
}

func (hm HourMinute) Size() int {
	return hourMinuteSize
}

func (hm HourMinute) MaxSize() int {
	return hourMinuteSize
}

func (hm HourMinute) Variable() bool {
	return false
}

// Replace decodes buf into hm. It fails unless buf is exactly two bytes long.
func (hm *HourMinute) Replace(buf []byte) error {
	if len(buf) != hourMinuteSize {
		return ErrInvalidLength.Fmt(len(buf), "time of day")
	}

	*hm = HourMinute(binary.LittleEndian.Uint16(buf))

	return nil
}
