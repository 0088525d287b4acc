package timetable

import (
	"strconv"

	"github.com/ayoisaiah/hypnos/internal/record"
)

// Clock is the part of the real-time clock that backs the unix time
// characteristic.
type Clock interface {
	Unix() (uint32, error)
	SetUnix(ts uint32) error
}

// Service exposes the timetable as raw characteristics, the way a remote
// client reads and writes them.
type Service struct {
	Timetable *Timetable
	Clock     Clock
}

// Names returns the characteristic names in schema order, followed by the
// unix time characteristic.
func (s *Service) Names() []string {
	entries := s.Timetable.Schema().Entries()

	names := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		names = append(names, e.Name)
	}

	return append(names, unixTimeName)
}

const unixTimeName = "unix_time"

// Read returns the current raw value of a characteristic, addressed by name
// or by numeric id.
func (s *Service) Read(name string) ([]byte, error) {
	id, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	if id == IDUnixTime {
		ts, err := s.Clock.Unix()
		if err != nil {
			return nil, err
		}

		return record.Uint32(ts).Bytes(), nil
	}

	e, _ := s.Timetable.Schema().Lookup(id)

	return e.Field.Bytes(), nil
}

// Write hands buf to the characteristic's Replace. A rejected write leaves
// the stored value as it was. Writing the unix time sets the clock.
func (s *Service) Write(name string, buf []byte) error {
	id, err := s.resolve(name)
	if err != nil {
		return err
	}

	if id == IDUnixTime {
		var ts record.Uint32

		if err := ts.Replace(buf); err != nil {
			return err
		}

		return s.Clock.SetUnix(uint32(ts))
	}

	e, _ := s.Timetable.Schema().Lookup(id)

	return e.Field.Replace(buf)
}

func (s *Service) resolve(name string) (record.ID, error) {
	if name == unixTimeName {
		return IDUnixTime, nil
	}

	schema := s.Timetable.Schema()

	if e, ok := schema.LookupName(name); ok {
		return e.ID, nil
	}

	id, err := strconv.ParseUint(name, 0, 8)
	if err == nil {
		if record.ID(id) == IDUnixTime {
			return IDUnixTime, nil
		}

		if e, ok := schema.Lookup(record.ID(id)); ok {
			return e.ID, nil
		}
	}

	return 0, ErrUnknownCharacteristic.Fmt(name)
}
