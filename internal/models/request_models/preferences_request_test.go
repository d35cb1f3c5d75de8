package request_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterestList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"  ,  , ", []string{}},
		{"história", []string{"história"}},
		{"história, gastronomia", []string{"história", "gastronomia"}},
		{" praia ,, trilhas ", []string{"praia", "trilhas"}},
	}

	for _, tc := range cases {
		got := TravelPreferencesRequest{Interests: tc.in}.InterestList()
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
