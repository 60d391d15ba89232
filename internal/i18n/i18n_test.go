package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, "Order placed successfully", Lookup("en", KeyOrderCreated))
	assert.Equal(t, "تم تقديم الطلب بنجاح", Lookup("ar", KeyOrderCreated))
}

func TestLookupFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "Order placed successfully", Lookup("fr", KeyOrderCreated))
	assert.Equal(t, "Order placed successfully", Lookup("", KeyOrderCreated))
}

func TestLookupUnknownKey(t *testing.T) {
	assert.Equal(t, "no.such.key", Lookup("en", "no.such.key"))
}

func TestParseLocale(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"en", "en"},
		{"ar", "ar"},
		{"ar-SA,ar;q=0.9,en;q=0.8", "ar"},
		{"en-US,en;q=0.5", "en"},
		{"fr-FR", "en"},
		{"AR", "ar"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseLocale(tc.header), "header %q", tc.header)
	}
}
