package domain

import (
	"github.com/shopspring/decimal"
)

// CartSnapshot is the full server-reported state of a cart at a point in
// time. It is immutable once received; updates replace the whole snapshot.
type CartSnapshot struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"order_items"`
}

// Order carries the aggregate totals of a cart. Monetary values arrive as
// decimal-encoded strings and are parsed on read.
type Order struct {
	ItemTotal        string `json:"item_total"`
	ItemPreTaxTotal  string `json:"item_pre_tax_total"`
	Total            string `json:"total"`
	PreTaxTotal      string `json:"pre_tax_total"`
	DiscountTotal    string `json:"discount_total"`
	IncludedTaxTotal string `json:"included_tax_total"`
	ShipmentTotal    string `json:"shipment_total"`
}

// OrderItem is one product variant and its quantity/pricing within a cart.
type OrderItem struct {
	VariantID            int64  `json:"variant_id"`
	Quantity             int    `json:"quantity"`
	Amount               string `json:"amount"`
	PreTaxAmount         string `json:"pre_tax_amount"`
	OriginalAmount       string `json:"original_amount"`
	OriginalAmountPreTax string `json:"original_amount_pre_tax"`
}

// ItemCount returns the sum of quantities across all line items.
func (s CartSnapshot) ItemCount() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// Empty reports whether the snapshot holds no line items.
func (s CartSnapshot) Empty() bool {
	return len(s.Items) == 0
}

// Amount parses a decimal-encoded monetary string. Malformed or empty input
// reads as zero, matching how the reference frontend coerced missing fields.
func Amount(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CurrentAmount selects the line amount for the given tax mode.
func (i OrderItem) CurrentAmount(showTaxes bool) decimal.Decimal {
	if showTaxes {
		return Amount(i.Amount)
	}
	return Amount(i.PreTaxAmount)
}

// OriginalPrice selects the pre-discount line amount for the given tax mode.
func (i OrderItem) OriginalPrice(showTaxes bool) decimal.Decimal {
	if showTaxes {
		return Amount(i.OriginalAmount)
	}
	return Amount(i.OriginalAmountPreTax)
}

// Discounted reports whether the item carries an item-level discount. The
// comparison always uses the tax-inclusive amounts, as the reference does.
func (i OrderItem) Discounted() bool {
	return Amount(i.OriginalAmount).GreaterThan(Amount(i.Amount))
}
