package httpserver

import (
	"sync"

	"github.com/shopspring/decimal"

	"storefront-web/internal/domain"
)

// VariantLine is the stub backend's record of one variant in a cart: unit
// prices in both tax modes, before and after item-level discounts.
type VariantLine struct {
	VariantID          int64
	Quantity           int
	Unit               decimal.Decimal
	UnitPreTax         decimal.Decimal
	UnitOriginal       decimal.Decimal
	UnitOriginalPreTax decimal.Decimal
}

// CartStore holds one cart per session, seeded identically. Line amounts and
// order aggregates are recomputed from unit prices on every read, so a
// removal is just dropping the line.
type CartStore struct {
	mu            sync.Mutex
	carts         map[string][]VariantLine
	seed          []VariantLine
	orderDiscount decimal.Decimal
	shipping      decimal.Decimal
}

func NewCartStore(seed []VariantLine, orderDiscount, shipping decimal.Decimal) *CartStore {
	return &CartStore{
		carts:         make(map[string][]VariantLine),
		seed:          seed,
		orderDiscount: orderDiscount,
		shipping:      shipping,
	}
}

// DefaultSeed is the demo cart new sessions start with: one discounted
// variant and one at full price.
func DefaultSeed() []VariantLine {
	return []VariantLine{
		{
			VariantID:          101,
			Quantity:           2,
			Unit:               decimal.RequireFromString("80"),
			UnitPreTax:         decimal.RequireFromString("64"),
			UnitOriginal:       decimal.RequireFromString("100"),
			UnitOriginalPreTax: decimal.RequireFromString("80"),
		},
		{
			VariantID:          102,
			Quantity:           1,
			Unit:               decimal.RequireFromString("50"),
			UnitPreTax:         decimal.RequireFromString("40"),
			UnitOriginal:       decimal.RequireFromString("50"),
			UnitOriginalPreTax: decimal.RequireFromString("40"),
		},
	}
}

// Snapshot returns the session's cart as the wire-format snapshot.
func (s *CartStore) Snapshot(sessionID string) domain.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(s.sessionLinesLocked(sessionID))
}

// SetQuantity updates one variant's quantity in the session's cart and
// returns the resulting snapshot. A quantity of zero or less removes the
// line entirely; removed lines never reappear in later snapshots.
func (s *CartStore) SetQuantity(sessionID string, variantID int64, quantity int) domain.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.sessionLinesLocked(sessionID)
	out := lines[:0]
	for _, line := range lines {
		if line.VariantID == variantID {
			if quantity <= 0 {
				continue
			}
			line.Quantity = quantity
		}
		out = append(out, line)
	}
	s.carts[sessionID] = out
	return s.snapshotLocked(out)
}

func (s *CartStore) sessionLinesLocked(sessionID string) []VariantLine {
	if lines, ok := s.carts[sessionID]; ok {
		return lines
	}
	lines := append([]VariantLine{}, s.seed...)
	s.carts[sessionID] = lines
	return lines
}

func (s *CartStore) snapshotLocked(lines []VariantLine) domain.CartSnapshot {
	items := make([]domain.OrderItem, 0, len(lines))
	itemTotal := decimal.Zero
	itemPreTax := decimal.Zero
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		amount := line.Unit.Mul(qty)
		preTax := line.UnitPreTax.Mul(qty)
		items = append(items, domain.OrderItem{
			VariantID:            line.VariantID,
			Quantity:             line.Quantity,
			Amount:               amount.String(),
			PreTaxAmount:         preTax.String(),
			OriginalAmount:       line.UnitOriginal.Mul(qty).String(),
			OriginalAmountPreTax: line.UnitOriginalPreTax.Mul(qty).String(),
		})
		itemTotal = itemTotal.Add(amount)
		itemPreTax = itemPreTax.Add(preTax)
	}

	discount := s.orderDiscount
	shipping := s.shipping
	if len(items) == 0 {
		discount = decimal.Zero
		shipping = decimal.Zero
	}

	includedTax := itemTotal.Sub(itemPreTax)
	total := itemTotal.Sub(discount).Add(shipping)

	return domain.CartSnapshot{
		Order: domain.Order{
			ItemTotal:        itemTotal.String(),
			ItemPreTaxTotal:  itemPreTax.String(),
			Total:            total.String(),
			PreTaxTotal:      total.Sub(includedTax).String(),
			DiscountTotal:    discount.String(),
			IncludedTaxTotal: includedTax.String(),
			ShipmentTotal:    shipping.String(),
		},
		Items: items,
	}
}
