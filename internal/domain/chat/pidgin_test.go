package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectPidgin(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"two markers", "Eh brah, how da reef stay looking?", true},
		{"single marker", "Eh, what are the conditions today?", false},
		{"plain english", "What is the water temperature at Hanauma Bay?", false},
		{"markers inside words", "The database stays updated daily", false},
		{"howzit and shoots", "Howzit! Shoots, I like go snorkel", true},
		{"rain counts as a marker", "Rain stay coming down", true},
		{"uppercase", "BRAH DA WAVES STAY BIG", true},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DetectPidgin(tc.text))
		})
	}
}
