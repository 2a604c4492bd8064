package stores

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "My Store", "my-store"},
		{"diacritics", "Café Crème", "cafe-creme"},
		{"punctuation collapses", "Birch & Bloom!!", "birch-bloom"},
		{"leading and trailing junk", "  --Aurora--  ", "aurora"},
		{"digits kept", "Shop 24/7", "shop-24-7"},
		{"already slugged", "cobalt-gadgets", "cobalt-gadgets"},
		{"empty", "", ""},
		{"only symbols", "???", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}
