// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

const fixtureDir = "testdata"

// CompareGolden checks got against testdata/<name>.golden. A nil got
// asserts that no golden file exists. Run with -update to rewrite.
func CompareGolden(t *testing.T, name string, got []byte) {
	t.Helper()

	if got == nil {
		f := filepath.Join(fixtureDir, name+".golden")
		if _, err := os.Stat(f); err == nil || !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected no output, but golden file exists: %s", f)
		}

		return
	}

	g := goldie.New(t, goldie.WithFixtureDir(fixtureDir))

	// git may check the fixtures out with CRLF endings
	g.Assert(t, name, bytes.ReplaceAll(got, []byte("\r\n"), []byte("\n")))
}

// CopyFixture copies testdata/<name> to dst.
func CopyFixture(t *testing.T, name, dst string) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(fixtureDir, name))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	if err := os.WriteFile(dst, data, 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
}
