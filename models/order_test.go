package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcTotals(t *testing.T) {
	items := []OrderItem{
		{Name: "Tea", Price: 1.5, Quantity: 2},
		{Name: "Burger", Price: 8.25, Quantity: 1},
	}

	subtotal, tax, total := CalcTotals(items)
	assert.Equal(t, 11.25, subtotal)
	assert.Equal(t, 0.79, tax) // 11.25 * 0.07 = 0.7875, rounded to cents
	assert.Equal(t, 12.04, total)
}

func TestCalcTotalsEmpty(t *testing.T) {
	subtotal, tax, total := CalcTotals(nil)
	assert.Equal(t, 0.0, subtotal)
	assert.Equal(t, 0.0, tax)
	assert.Equal(t, 0.0, total)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusNew))
	assert.True(t, ValidStatus(StatusPreparing))
	assert.True(t, ValidStatus(StatusReady))
	assert.True(t, ValidStatus(StatusCompleted))
	assert.False(t, ValidStatus("delivered"))
	assert.False(t, ValidStatus(""))
}
