package cartsync

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"storefront-web/internal/domain"
)

const (
	cartPath       = "/w/cart?associations[]=variant"
	orderItemsPath = "/w/cart/order_items?associations[]=variant"
	paymentPath    = "/w/checkout/payment"
	cartPagePath   = "/w/cart"
)

// Page is the rendered page the client acts on: where the visitor is, how to
// navigate away, and how to drop the product cards of a removed variant. A
// variant may be rendered in several card lists at once (main cart plus mini
// cart), so removal is by variant identity, not by a single element.
type Page interface {
	OnCheckout() bool
	Navigate(path string)
	RemoveVariantCards(variantID int64)
}

// PaymentWidget controls the embedded checkout payment widget. It is only
// reachable once the widget has initialized; callers pass nil before then.
type PaymentWidget interface {
	Suspend()
	Resume()
}

type stateStore interface {
	Set(raw json.RawMessage)
}

type removeRequest struct {
	OrderItems []removeItem `json:"order_items"`
}

type removeItem struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

// Client synchronizes the local cart cache with the backend cart API.
// Failures are logged and swallowed; the cache and page keep their
// last-known-good state, never a partial one.
type Client struct {
	httpClient *http.Client
	baseURL    string
	store      stateStore
	page       Page
	widget     PaymentWidget
	logger     *log.Logger
}

// New builds a sync client. httpClient may be nil, in which case the default
// client (no explicit timeout) is used. widget may be nil when the payment
// widget has not initialized.
func New(httpClient *http.Client, baseURL string, store stateStore, page Page, widget PaymentWidget, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		store:      store,
		page:       page,
		widget:     widget,
		logger:     logger,
	}
}

// FetchAndStore reads the current cart, variant associations included, and
// forwards the response to the state store. On any failure it logs and
// leaves the cached state unchanged; nothing propagates to the caller.
func (c *Client) FetchAndStore(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+cartPath, nil)
	if err != nil {
		c.logger.Printf("failed to fetch cart state: %v", err)
		return
	}
	req.Header.Set("Accept", "application/json")

	body, ok := c.do(req, "failed to fetch cart state")
	if !ok {
		return
	}
	c.store.Set(body)
}

// RemoveLineItem sets the identified variant's quantity to zero on the
// server and reconciles the page and cached state with the response.
//
// While on the checkout flow the payment widget is suspended before the
// mutation so it cannot act on stale totals. If the removal empties the cart
// on checkout the client navigates straight to the cart page, skipping card
// cleanup; the redirect replaces the whole page anyway.
func (c *Client) RemoveLineItem(ctx context.Context, variantID int64) {
	onCheckout := c.page.OnCheckout()
	if onCheckout && c.widget != nil {
		c.widget.Suspend()
	}

	payload, err := json.Marshal(removeRequest{
		OrderItems: []removeItem{{VariantID: variantID, Quantity: 0}},
	})
	if err != nil {
		c.logger.Printf("failed to remove item from cart: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+orderItemsPath, bytes.NewReader(payload))
	if err != nil {
		c.logger.Printf("failed to remove item from cart: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	body, ok := c.do(req, "failed to remove item from cart")
	if !ok {
		c.warnSuspended(onCheckout)
		return
	}

	var snap domain.CartSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		c.logger.Printf("failed to remove item from cart: %v", err)
		c.warnSuspended(onCheckout)
		return
	}

	if onCheckout {
		if snap.Empty() {
			c.page.Navigate(cartPagePath)
			return
		}

		if !c.refreshPayment(ctx) {
			c.warnSuspended(onCheckout)
			return
		}
		if c.widget != nil {
			c.widget.Resume()
		}
	}

	c.page.RemoveVariantCards(variantID)
	c.store.Set(body)

	if snap.Empty() && c.page.OnCheckout() {
		c.page.Navigate(cartPagePath)
	}
}

// refreshPayment triggers server-side payment recomputation after a removal
// during checkout. The response body is unused beyond success or failure.
func (c *Client) refreshPayment(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+paymentPath, nil)
	if err != nil {
		c.logger.Printf("failed to update payment: %v", err)
		return false
	}
	req.Header.Set("Accept", "application/json")

	_, ok := c.do(req, "failed to update payment")
	return ok
}

func (c *Client) do(req *http.Request, failureMsg string) ([]byte, bool) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("%s: %v", failureMsg, err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Printf("%s: status %d", failureMsg, resp.StatusCode)
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("%s: %v", failureMsg, err)
		return nil, false
	}
	return body, true
}

func (c *Client) warnSuspended(onCheckout bool) {
	if onCheckout && c.widget != nil {
		c.logger.Printf("payment widget left suspended after failed cart removal")
	}
}
