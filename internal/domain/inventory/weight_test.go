package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotalWeight(t *testing.T) {
	tests := []struct {
		name string
		unit string
		qty  int
		want string
	}{
		{"decimal", "1.25", 4, "5"},
		{"cero unidades", "2", 0, "0"},
		{"peso negativo", "-1", 3, "0"},
		{"peso cero", "0", 10, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalWeight(decimal.RequireFromString(tt.unit), tt.qty)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}
