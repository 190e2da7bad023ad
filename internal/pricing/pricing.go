// Package pricing computes the charged unit price for a cart line. The
// result is frozen onto the CartItem at add-time; later catalogue price
// changes never alter items already in a cart or a placed order.
package pricing

import "rent-kart/internal/model"

// PriceItem resolves the unit price for acquiring product in the given
// mode. For buy mode the distinct purchase price wins, falling back to the
// base price. For rent mode the tenure-specific monthly rate is looked up
// in the product's rental option table; a tenure with no exact match falls
// back to the first configured option rather than pricing as zero. The
// add-on price, if any, is additive.
func PriceItem(product *model.Product, mode model.AcquisitionMode, tenureMonths int, addon *model.WarrantyAddon) float64 {
	var price float64

	switch mode {
	case model.ModeBuy:
		price = product.BasePrice
		if product.PurchasePrice != nil {
			price = *product.PurchasePrice
		}
	case model.ModeRent:
		price = rentalRate(product, tenureMonths)
	}

	if addon != nil {
		price += addon.Price
	}

	return price
}

// ResolveTenure returns the tenure the item will actually be charged for:
// the requested tenure when the product configures it, otherwise the first
// configured option's tenure.
func ResolveTenure(product *model.Product, tenureMonths int) int {
	for _, opt := range product.RentalOptions {
		if opt.TenureMonths == tenureMonths {
			return tenureMonths
		}
	}
	if len(product.RentalOptions) > 0 {
		return product.RentalOptions[0].TenureMonths
	}
	return tenureMonths
}

func rentalRate(product *model.Product, tenureMonths int) float64 {
	for _, opt := range product.RentalOptions {
		if opt.TenureMonths == tenureMonths {
			return opt.MonthlyPrice
		}
	}
	if len(product.RentalOptions) > 0 {
		return product.RentalOptions[0].MonthlyPrice
	}
	// No rental table configured at all: charge the base price rather
	// than silently pricing the line as zero.
	return product.BasePrice
}
