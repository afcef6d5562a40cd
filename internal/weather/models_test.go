package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAlert(t *testing.T) {
	cases := []struct {
		name string
		snap Snapshot
		want Alert
	}{
		{"mild", Snapshot{Temperature: 20, WindSpeed: 5}, AlertNone},
		{"heat", Snapshot{Temperature: 35.5}, AlertHeat},
		{"boundary heat", Snapshot{Temperature: 35}, AlertNone},
		{"freezing", Snapshot{Temperature: -0.5}, AlertFreezing},
		{"boundary freezing", Snapshot{Temperature: 0}, AlertNone},
		{"wind", Snapshot{Temperature: 10, WindSpeed: 21}, AlertWind},
		{"heat wins over wind", Snapshot{Temperature: 36, WindSpeed: 25}, AlertHeat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyAlert(tc.snap))
		})
	}
}
