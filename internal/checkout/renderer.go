package checkout

import (
	"log"

	"storefront-web/internal/domain"
	"storefront-web/internal/event"
)

// View is the rendered page surface the renderer writes into. It mirrors the
// element set of the subtotal area, the checkout summary and the per-item
// cards; availability checks stand in for element lookups.
type View interface {
	// SubtotalAvailable reports whether the subtotal target elements exist.
	SubtotalAvailable() bool
	ShowHasItems(has bool)
	WriteSubtotal(total string)

	// OnCheckout reports whether the current page is in the checkout flow.
	OnCheckout() bool

	// SummaryAvailable reports whether the required summary elements
	// (combined article price, tax, total) exist.
	SummaryAvailable() bool
	WriteProductCount(label string)
	WriteCombinedArticlePrice(v string)
	WriteDiscount(v string, visible bool)
	WriteTax(v string)
	// HasShippingRow reports whether the optional shipping row is rendered.
	HasShippingRow() bool
	WriteShipping(v string)
	WriteTotal(v string)

	// WriteItemPrice updates the card for the given variant, if rendered.
	WriteItemPrice(variantID int64, original, discounted string)
}

// Renderer projects cart snapshots onto visible totals. It holds no state of
// its own; every accepted snapshot is rendered from scratch.
type Renderer struct {
	view      View
	format    FormatFunc
	showTaxes bool
	labels    Labels
	logger    *log.Logger
}

func NewRenderer(view View, format FormatFunc, showTaxes bool, labels Labels, logger *log.Logger) *Renderer {
	return &Renderer{
		view:      view,
		format:    format,
		showTaxes: showTaxes,
		labels:    labels,
		logger:    logger,
	}
}

// Bind subscribes the renderer to snapshot updates on the bus. Rendering is
// idempotent, so repeated notifications with identical data are harmless.
func (r *Renderer) Bind(bus *event.Bus) {
	bus.OnStateUpdated(r.Render)
}

// Render writes the snapshot's totals into the view. A missing subtotal
// target aborts silently; a missing required summary element logs and skips
// the summary while leaving the subtotal update and item prices intact.
func (r *Renderer) Render(snap domain.CartSnapshot) {
	if !r.view.SubtotalAvailable() {
		return
	}

	subtotal := NewSubtotalViewModel(snap, r.showTaxes, r.format)
	r.view.ShowHasItems(subtotal.HasItems)
	r.view.WriteSubtotal(subtotal.Total)

	if !r.view.OnCheckout() {
		return
	}

	r.renderSummary(snap)
	r.renderItems(snap)
}

func (r *Renderer) renderSummary(snap domain.CartSnapshot) {
	if !r.view.SummaryAvailable() {
		r.logger.Printf("failed to update checkout price, one or more elements are missing")
		return
	}

	summary := NewSummaryViewModel(snap, r.showTaxes, r.labels, r.format)
	r.view.WriteProductCount(summary.ProductCount)
	r.view.WriteCombinedArticlePrice(summary.CombinedArticlePrice)
	r.view.WriteDiscount(summary.Discount, summary.DiscountVisible)
	r.view.WriteTax(summary.Tax)
	if r.view.HasShippingRow() {
		r.view.WriteShipping(summary.Shipping)
	}
	r.view.WriteTotal(summary.Total)
}

func (r *Renderer) renderItems(snap domain.CartSnapshot) {
	for _, vm := range NewItemPriceViewModels(snap, r.showTaxes, r.format) {
		r.view.WriteItemPrice(vm.VariantID, vm.Original, vm.Discounted)
	}
}
