package cartsync

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-web/internal/domain"
)

type stubStore struct {
	sets []json.RawMessage
}

func (s *stubStore) Set(raw json.RawMessage) {
	s.sets = append(s.sets, raw)
}

type stubPage struct {
	checkout  bool
	navigated []string
	removed   []int64
}

func (p *stubPage) OnCheckout() bool                   { return p.checkout }
func (p *stubPage) Navigate(path string)               { p.navigated = append(p.navigated, path) }
func (p *stubPage) RemoveVariantCards(variantID int64) { p.removed = append(p.removed, variantID) }

type stubWidget struct {
	suspends int
	resumes  int
}

func (w *stubWidget) Suspend() { w.suspends++ }
func (w *stubWidget) Resume()  { w.resumes++ }

type backend struct {
	cartStatus    int
	cartBody      string
	removeStatus  int
	removeBody    string
	paymentStatus int

	removeRequests  []removeRequest
	paymentRequests int
}

func (b *backend) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/w/cart":
			if r.URL.RawQuery != "associations[]=variant" {
				t.Errorf("unexpected cart query %q", r.URL.RawQuery)
			}
			w.WriteHeader(b.cartStatus)
			io.WriteString(w, b.cartBody)
		case "/w/cart/order_items":
			if r.URL.RawQuery != "associations[]=variant" {
				t.Errorf("unexpected order_items query %q", r.URL.RawQuery)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("unexpected content type %q", ct)
			}
			var req removeRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode remove request: %v", err)
			}
			b.removeRequests = append(b.removeRequests, req)
			w.WriteHeader(b.removeStatus)
			io.WriteString(w, b.removeBody)
		case "/w/checkout/payment":
			b.paymentRequests++
			w.WriteHeader(b.paymentStatus)
		default:
			t.Errorf("unexpected request path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func snapshotBody(t *testing.T, snap domain.CartSnapshot) string {
	t.Helper()
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	return string(raw)
}

func TestFetchAndStoreSuccess(t *testing.T) {
	b := &backend{cartStatus: http.StatusOK, cartBody: snapshotBody(t, domain.CartSnapshot{
		Items: []domain.OrderItem{{VariantID: 5, Quantity: 1}},
	})}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	store := &stubStore{}
	client := New(srv.Client(), srv.URL, store, &stubPage{}, nil, log.New(io.Discard, "", 0))
	client.FetchAndStore(context.Background())

	if len(store.sets) != 1 {
		t.Fatalf("expected one store update, got %d", len(store.sets))
	}
	var snap domain.CartSnapshot
	if err := json.Unmarshal(store.sets[0], &snap); err != nil {
		t.Fatalf("stored payload not a snapshot: %v", err)
	}
	if snap.Items[0].VariantID != 5 {
		t.Fatalf("unexpected stored snapshot %+v", snap)
	}
}

func TestFetchAndStoreFailureLeavesStateAndLogs(t *testing.T) {
	b := &backend{cartStatus: http.StatusBadGateway}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	var logged bytes.Buffer
	store := &stubStore{}
	client := New(srv.Client(), srv.URL, store, &stubPage{}, nil, log.New(&logged, "", 0))
	client.FetchAndStore(context.Background())

	if len(store.sets) != 0 {
		t.Fatalf("expected no store update on failure")
	}
	if !strings.Contains(logged.String(), "failed to fetch cart state") {
		t.Fatalf("expected fetch failure log, got %q", logged.String())
	}
}

func TestRemoveLineItemOutsideCheckout(t *testing.T) {
	b := &backend{removeStatus: http.StatusOK, removeBody: snapshotBody(t, domain.CartSnapshot{
		Items: []domain.OrderItem{{VariantID: 2, Quantity: 1, Amount: "50"}},
	})}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	store := &stubStore{}
	page := &stubPage{}
	widget := &stubWidget{}
	client := New(srv.Client(), srv.URL, store, page, widget, log.New(io.Discard, "", 0))
	client.RemoveLineItem(context.Background(), 7)

	if widget.suspends != 0 || widget.resumes != 0 {
		t.Fatalf("widget must not be touched off checkout: %+v", widget)
	}
	if b.paymentRequests != 0 {
		t.Fatalf("payment refresh must not run off checkout")
	}
	if len(page.removed) != 1 || page.removed[0] != 7 {
		t.Fatalf("expected card removal for variant 7, got %v", page.removed)
	}
	if len(store.sets) != 1 {
		t.Fatalf("expected one store update, got %d", len(store.sets))
	}
	if len(page.navigated) != 0 {
		t.Fatalf("unexpected navigation %v", page.navigated)
	}
	if len(b.removeRequests) != 1 {
		t.Fatalf("expected one remove request")
	}
	sent := b.removeRequests[0]
	if len(sent.OrderItems) != 1 || sent.OrderItems[0].VariantID != 7 || sent.OrderItems[0].Quantity != 0 {
		t.Fatalf("unexpected remove payload %+v", sent)
	}
}

func TestRemoveLastItemOnCheckoutShortCircuits(t *testing.T) {
	b := &backend{removeStatus: http.StatusOK, removeBody: snapshotBody(t, domain.CartSnapshot{})}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	store := &stubStore{}
	page := &stubPage{checkout: true}
	widget := &stubWidget{}
	client := New(srv.Client(), srv.URL, store, page, widget, log.New(io.Discard, "", 0))
	client.RemoveLineItem(context.Background(), 3)

	if widget.suspends != 1 {
		t.Fatalf("expected widget suspend before mutation, got %d", widget.suspends)
	}
	if len(page.navigated) != 1 || page.navigated[0] != "/w/cart" {
		t.Fatalf("expected navigation to cart page, got %v", page.navigated)
	}
	if len(page.removed) != 0 {
		t.Fatalf("short-circuit must skip card removal, got %v", page.removed)
	}
	if len(store.sets) != 0 {
		t.Fatalf("short-circuit must skip state update")
	}
	if b.paymentRequests != 0 {
		t.Fatalf("short-circuit must skip payment refresh")
	}
}

func TestRemoveOnCheckoutRefreshesPaymentAndResumes(t *testing.T) {
	b := &backend{
		removeStatus: http.StatusOK,
		removeBody: snapshotBody(t, domain.CartSnapshot{
			Items: []domain.OrderItem{{VariantID: 4, Quantity: 2, Amount: "100"}},
		}),
		paymentStatus: http.StatusOK,
	}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	store := &stubStore{}
	page := &stubPage{checkout: true}
	widget := &stubWidget{}
	client := New(srv.Client(), srv.URL, store, page, widget, log.New(io.Discard, "", 0))
	client.RemoveLineItem(context.Background(), 9)

	if widget.suspends != 1 || widget.resumes != 1 {
		t.Fatalf("expected suspend then resume, got %+v", widget)
	}
	if b.paymentRequests != 1 {
		t.Fatalf("expected one payment refresh, got %d", b.paymentRequests)
	}
	if len(page.removed) != 1 || page.removed[0] != 9 {
		t.Fatalf("expected card removal, got %v", page.removed)
	}
	if len(store.sets) != 1 {
		t.Fatalf("expected state update")
	}
	if len(page.navigated) != 0 {
		t.Fatalf("cart still has items, no navigation expected: %v", page.navigated)
	}
}

func TestRemovePaymentRefreshFailureAborts(t *testing.T) {
	b := &backend{
		removeStatus: http.StatusOK,
		removeBody: snapshotBody(t, domain.CartSnapshot{
			Items: []domain.OrderItem{{VariantID: 4, Quantity: 1, Amount: "100"}},
		}),
		paymentStatus: http.StatusInternalServerError,
	}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	var logged bytes.Buffer
	store := &stubStore{}
	page := &stubPage{checkout: true}
	widget := &stubWidget{}
	client := New(srv.Client(), srv.URL, store, page, widget, log.New(&logged, "", 0))
	client.RemoveLineItem(context.Background(), 4)

	if len(page.removed) != 0 || len(store.sets) != 0 {
		t.Fatalf("failed refresh must leave page and state untouched")
	}
	if widget.resumes != 0 {
		t.Fatalf("widget must not resume after failed refresh")
	}
	if !strings.Contains(logged.String(), "failed to update payment") {
		t.Fatalf("expected payment failure log, got %q", logged.String())
	}
	if !strings.Contains(logged.String(), "payment widget left suspended") {
		t.Fatalf("expected suspended-widget warning, got %q", logged.String())
	}
}

func TestRemoveMutationFailureAborts(t *testing.T) {
	b := &backend{removeStatus: http.StatusConflict}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	var logged bytes.Buffer
	store := &stubStore{}
	page := &stubPage{}
	client := New(srv.Client(), srv.URL, store, page, nil, log.New(&logged, "", 0))
	client.RemoveLineItem(context.Background(), 1)

	if len(page.removed) != 0 || len(store.sets) != 0 || len(page.navigated) != 0 {
		t.Fatalf("failed mutation must leave everything untouched")
	}
	if !strings.Contains(logged.String(), "failed to remove item from cart") {
		t.Fatalf("expected removal failure log, got %q", logged.String())
	}
}

func TestRemoveWithNilWidgetOnCheckout(t *testing.T) {
	b := &backend{
		removeStatus: http.StatusOK,
		removeBody: snapshotBody(t, domain.CartSnapshot{
			Items: []domain.OrderItem{{VariantID: 4, Quantity: 1, Amount: "100"}},
		}),
		paymentStatus: http.StatusOK,
	}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	store := &stubStore{}
	page := &stubPage{checkout: true}
	client := New(srv.Client(), srv.URL, store, page, nil, log.New(io.Discard, "", 0))
	client.RemoveLineItem(context.Background(), 4)

	if len(page.removed) != 1 || len(store.sets) != 1 {
		t.Fatalf("removal should proceed without an initialized widget")
	}
}
