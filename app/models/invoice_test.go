package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceComputeTotal(t *testing.T) {
	inv := &Invoice{
		Items: []InvoiceItem{
			{Description: "Oil change", Quantity: 1, UnitPriceCents: 4990},
			{Description: "Brake pads", Quantity: 2, UnitPriceCents: 8950},
			{Description: "Labor", Quantity: 3, UnitPriceCents: 6500},
		},
	}

	inv.ComputeTotal()
	assert.Equal(t, int64(4990+2*8950+3*6500), inv.TotalCents)
}

func TestInvoiceComputeTotalEmpty(t *testing.T) {
	inv := &Invoice{TotalCents: 999}
	inv.ComputeTotal()
	assert.Equal(t, int64(0), inv.TotalCents)
}
