package address_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dukerupert/brochure/internal/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ShortForm(t *testing.T) {
	got, err := address.Parse("Main Street 42")

	require.NoError(t, err)
	assert.Equal(t, address.FormShort, got.Form)
	assert.Equal(t, "Main Street", got.Street)
	assert.Equal(t, "42", got.Number)
	assert.Empty(t, got.Zip)
	assert.Empty(t, got.City)
}

func TestParse_LongForm(t *testing.T) {
	got, err := address.Parse("Main Street 42, 10115 Berlin")

	require.NoError(t, err)
	assert.Equal(t, address.FormLong, got.Form)
	assert.Equal(t, "Main Street", got.Street)
	assert.Equal(t, "42", got.Number)
	assert.Equal(t, "10115", got.Zip)
	assert.Equal(t, "Berlin", got.City)
}

func TestValidate_Accepts(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"short form", "Main Street 42"},
		{"short form single word street", "Domgasse 5"},
		{"short form lower case", "main street 42"},
		{"short form underscore is a word character", "Main_Street 7"},
		{"short form multiple spaces inside street", "Main  Street 42"},
		{"long form", "Main Street 42, 10115 Berlin"},
		{"long form single word street", "Domgasse 5, 1010 Wien"},
		{"no-break space inside street", "Main\u00a0Street 42"},
		{"vertical tab inside street", "Main\vStreet 42"},
		{"no-break space before number", "Main Street\u00a042"},
		{"no-break space after comma", "Main Street 42,\u00a010115 Berlin"},
		{"narrow no-break space before city", "Main Street 42, 10115\u202fBerlin"},
		{"ideographic space inside street", "Main\u3000Street 42"},
		{"byte order mark inside street", "Main\ufeffStreet 42"},
		{"line separator before number", "Main Street\u202842"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, address.Validate(tt.query))
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"empty string", ""},
		{"words only", "not an address"},
		{"number only", "42"},
		{"trailing space", "Main Street 42 "},
		{"leading number, trailing word", "42 Main Street"},
		{"missing space after comma", "Main Street 42,10115 Berlin"},
		{"city with a space", "Main Street 42, 10115 New York"},
		{"non-numeric zip", "Main Street 42, AB12 Berlin"},
		{"missing city", "Main Street 42, 10115"},
		{"punctuation in street", "St. James Street 4"},
		{"non-ASCII letters", "Hauptstraße 5"},
		{"zero-width space is not whitespace", "Main\u200bStreet 42"},
		{"no-break space where comma belongs", "Main Street 42\u00a010115 Berlin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := address.Validate(tt.query)

			require.Error(t, err)
			assert.Equal(t, "Could not parse address. Invalid format.", err.Error())

			var formatErr *address.FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tt.query, formatErr.Query)
		})
	}
}

func TestFormatError_IsInvalidFormat(t *testing.T) {
	err := fmt.Errorf("lookup: %w", address.Validate("not an address"))

	assert.True(t, errors.Is(err, address.ErrInvalidFormat))
	assert.False(t, errors.Is(errors.New("Could not parse address. Invalid format."), address.ErrInvalidFormat))
}

func TestParse_KeepsUnicodeSpacesInGroups(t *testing.T) {
	got, err := address.Parse("Main\u00a0Street 42")

	require.NoError(t, err)
	assert.Equal(t, "Main\u00a0Street", got.Street)
	assert.Equal(t, "42", got.Number)
}

func TestForm_String(t *testing.T) {
	assert.Equal(t, "short", address.FormShort.String())
	assert.Equal(t, "long", address.FormLong.String())
	assert.Equal(t, "unknown", address.Form(0).String())
}
