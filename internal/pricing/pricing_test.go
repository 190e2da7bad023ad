package pricing

import (
	"testing"

	"rent-kart/internal/model"

	"github.com/stretchr/testify/assert"
)

func testProduct() *model.Product {
	purchase := 2999.0
	return &model.Product{
		ID:            "P100",
		Name:          "MacBook Pro",
		Category:      "laptop",
		BasePrice:     3200,
		PurchasePrice: &purchase,
		RentalOptions: []model.RentalOption{
			{TenureMonths: 3, MonthlyPrice: 450},
			{TenureMonths: 6, MonthlyPrice: 380},
			{TenureMonths: 12, MonthlyPrice: 320},
		},
		Availability: model.AvailabilityBoth,
	}
}

func TestPriceItem_BuyUsesPurchasePrice(t *testing.T) {
	p := testProduct()
	assert.Equal(t, 2999.0, PriceItem(p, model.ModeBuy, 0, nil))
}

func TestPriceItem_BuyFallsBackToBasePrice(t *testing.T) {
	p := testProduct()
	p.PurchasePrice = nil
	assert.Equal(t, 3200.0, PriceItem(p, model.ModeBuy, 0, nil))
}

func TestPriceItem_RentExactTenure(t *testing.T) {
	p := testProduct()
	assert.Equal(t, 320.0, PriceItem(p, model.ModeRent, 12, nil))
	assert.Equal(t, 450.0, PriceItem(p, model.ModeRent, 3, nil))
}

func TestPriceItem_RentUnknownTenureFallsBackToFirstOption(t *testing.T) {
	p := testProduct()
	assert.Equal(t, 450.0, PriceItem(p, model.ModeRent, 9, nil))
}

func TestPriceItem_RentNoOptionsFallsBackToBasePrice(t *testing.T) {
	p := testProduct()
	p.RentalOptions = nil
	assert.Equal(t, 3200.0, PriceItem(p, model.ModeRent, 12, nil))
}

func TestPriceItem_AddonIsAdditive(t *testing.T) {
	p := testProduct()
	addon := &model.WarrantyAddon{ID: "W1", Label: "Extended warranty", Price: 25}
	assert.Equal(t, 345.0, PriceItem(p, model.ModeRent, 12, addon))
	assert.Equal(t, 3024.0, PriceItem(p, model.ModeBuy, 0, addon))
}

func TestResolveTenure(t *testing.T) {
	p := testProduct()
	assert.Equal(t, 12, ResolveTenure(p, 12))
	assert.Equal(t, 3, ResolveTenure(p, 9))

	p.RentalOptions = nil
	assert.Equal(t, 9, ResolveTenure(p, 9))
}

func TestPriceItem_SnapshotImmuneToCatalogueChange(t *testing.T) {
	p := testProduct()
	item := model.CartItem{
		ProductID:    p.ID,
		Mode:         model.ModeRent,
		UnitPrice:    PriceItem(p, model.ModeRent, 12, nil),
		Quantity:     1,
		TenureMonths: 12,
	}

	// Catalogue price changes after the item was added.
	p.RentalOptions[2].MonthlyPrice = 999

	assert.Equal(t, 320.0, item.UnitPrice)
	assert.Equal(t, 320.0, item.LineTotal())
}
