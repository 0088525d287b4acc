package apperr_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/hypnos/internal/apperr"
)

var errTemplate = &apperr.Error{Message: "slot %d is out of range"}

func TestFmtMatchesTemplate(t *testing.T) {
	err := errTemplate.Fmt(7)

	assert.Equal(t, "slot 7 is out of range", err.Error())
	assert.ErrorIs(t, err, errTemplate)
	assert.NotErrorIs(t, err, &apperr.Error{Message: "slot %d is out of range"})
}

func TestWrapKeepsCause(t *testing.T) {
	err := errTemplate.Fmt(3).Wrap(io.ErrUnexpectedEOF)

	assert.ErrorIs(t, err, errTemplate)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "slot 3 is out of range: unexpected EOF", err.Error())

	wrapped := errors.Join(errors.New("boot"), err)
	assert.ErrorIs(t, wrapped, errTemplate)
}
