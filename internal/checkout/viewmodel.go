package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"storefront-web/internal/domain"
)

// FormatFunc renders a monetary amount as a localized display string.
type FormatFunc func(decimal.Decimal) string

// Labels carries the product-count wording. Exactly one product uses the
// singular form; every other count, zero included, uses the plural.
type Labels struct {
	Singular string
	Plural   string
}

// DefaultLabels matches the storefront's Swedish wording.
var DefaultLabels = Labels{Singular: "produkt", Plural: "produkter"}

// SubtotalViewModel is the subtotal area projection of a snapshot.
type SubtotalViewModel struct {
	HasItems bool
	Total    string
}

// NewSubtotalViewModel computes the displayed subtotal: the tax-mode item
// total minus the order-level discount.
func NewSubtotalViewModel(snap domain.CartSnapshot, showTaxes bool, format FormatFunc) SubtotalViewModel {
	itemTotal := domain.Amount(snap.Order.ItemPreTaxTotal)
	if showTaxes {
		itemTotal = domain.Amount(snap.Order.ItemTotal)
	}
	discount := domain.Amount(snap.Order.DiscountTotal)
	return SubtotalViewModel{
		HasItems: !snap.Empty(),
		Total:    format(itemTotal.Sub(discount)),
	}
}

// SummaryViewModel is the checkout summary projection of a snapshot.
type SummaryViewModel struct {
	ProductCount         string
	CombinedArticlePrice string
	Discount             string
	DiscountVisible      bool
	Tax                  string
	Shipping             string
	Total                string
}

// NewSummaryViewModel computes the checkout summary. The displayed discount
// is the order-level discount plus the item-level discount, where the latter
// is the difference between combined original and combined current article
// prices whenever they differ. The discount row is visible unless both
// components are exactly zero.
func NewSummaryViewModel(snap domain.CartSnapshot, showTaxes bool, labels Labels, format FormatFunc) SummaryViewModel {
	count := snap.ItemCount()
	label := labels.Plural
	if count == 1 {
		label = labels.Singular
	}

	original := decimal.Zero
	current := decimal.Zero
	for _, item := range snap.Items {
		original = original.Add(item.OriginalPrice(showTaxes))
		current = current.Add(item.CurrentAmount(showTaxes))
	}

	orderDiscount := domain.Amount(snap.Order.DiscountTotal)
	itemsDiscount := decimal.Zero
	if !original.Equal(current) {
		itemsDiscount = original.Sub(current)
	}

	total := domain.Amount(snap.Order.PreTaxTotal)
	if showTaxes {
		total = domain.Amount(snap.Order.Total)
	}

	return SummaryViewModel{
		ProductCount:         fmt.Sprintf("%d %s", count, label),
		CombinedArticlePrice: format(original),
		Discount:             format(orderDiscount.Add(itemsDiscount)),
		DiscountVisible:      !(orderDiscount.IsZero() && itemsDiscount.IsZero()),
		Tax:                  format(domain.Amount(snap.Order.IncludedTaxTotal)),
		Shipping:             format(domain.Amount(snap.Order.ShipmentTotal)),
		Total:                format(total),
	}
}

// ItemPriceViewModel is the per-card price projection of one line item.
// Discounted is empty when the item carries no discount and the card should
// show only the original price without discount styling.
type ItemPriceViewModel struct {
	VariantID  int64
	Original   string
	Discounted string
}

// NewItemPriceViewModels computes per-item card prices. An item is rendered
// with both a struck-through original and a discounted price only when its
// original amount exceeds its current amount.
func NewItemPriceViewModels(snap domain.CartSnapshot, showTaxes bool, format FormatFunc) []ItemPriceViewModel {
	out := make([]ItemPriceViewModel, 0, len(snap.Items))
	for _, item := range snap.Items {
		vm := ItemPriceViewModel{
			VariantID: item.VariantID,
			Original:  format(item.OriginalPrice(showTaxes)),
		}
		if item.Discounted() {
			vm.Discounted = format(item.CurrentAmount(showTaxes))
		}
		out = append(out, vm)
	}
	return out
}
