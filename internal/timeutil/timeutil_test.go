package timeutil

import (
	"testing"
	"time"
)

func TestFromStr(t *testing.T) {
	Now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}

	t.Cleanup(func() {
		Now = time.Now
	})

	cases := []struct {
		input string
		want  time.Time
	}{
		{"1714564800", time.Unix(1714564800, 0)},
		{"2024-05-01 21:30", time.Date(2024, 5, 1, 21, 30, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, err := FromStr(tc.input)
		if err != nil {
			t.Fatalf("FromStr(%q): %v", tc.input, err)
		}

		if !got.Equal(tc.want) {
			t.Errorf("FromStr(%q): expected: %s, but got: %s", tc.input, tc.want, got)
		}
	}

	if _, err := FromStr("  "); err == nil {
		t.Error("expected an error for an empty value")
	}
}

func TestUnix(t *testing.T) {
	cases := []struct {
		in   time.Time
		want uint32
	}{
		{time.Unix(-5, 0), 0},
		{time.Unix(1700000000, 0), 1700000000},
		{time.Unix(1<<33, 0), 0xFFFFFFFF},
	}

	for _, tc := range cases {
		if got := Unix(tc.in); got != tc.want {
			t.Errorf("Expected: %d, but got: %d", tc.want, got)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(0, time.UTC); got != "-" {
		t.Errorf("Expected: -, but got: %s", got)
	}

	want := "2023-11-14 22:13:20 UTC"
	if got := Format(1700000000, time.UTC); got != want {
		t.Errorf("Expected: %s, but got: %s", want, got)
	}
}
