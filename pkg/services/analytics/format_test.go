package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"grouped", 1234567.891, "1,234,567.89"},
		{"rounds half up", 2.995, "3.00"},
		{"zero", 0, "0.00"},
		{"tiny negative", -0.004, "0.00"},
		{"negative", -1500, "-1,500.00"},
		{"above int64 range", 1e19, "10,000,000,000,000,000,000.00"},
		{"large negative", -2e15, "-2,000,000,000,000,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatAmount(tt.in))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1,500.00 RON", formatMoney(1500, "RON"))
	assert.Equal(t, "1,500.00", formatMoney(1500, ""))
}
