package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"os"

	"storefront-web/internal/cartstate"
	"storefront-web/internal/cartsync"
	"storefront-web/internal/checkout"
	"storefront-web/internal/config"
	"storefront-web/internal/event"
	"storefront-web/internal/locale"
	"storefront-web/internal/price"
)

// consolePage stands in for the rendered page when driving the glue from a
// terminal: navigation and card removal are printed instead of performed.
type consolePage struct {
	checkout bool
	logger   *log.Logger
}

func (p *consolePage) OnCheckout() bool { return p.checkout }

func (p *consolePage) Navigate(path string) {
	p.logger.Printf("navigate -> %s", path)
}

func (p *consolePage) RemoveVariantCards(variantID int64) {
	p.logger.Printf("remove cards for variant %d", variantID)
}

// consoleView prints every rendered field as a labeled line.
type consoleView struct {
	page *consolePage
	out  *os.File
}

func (v *consoleView) SubtotalAvailable() bool { return true }

func (v *consoleView) ShowHasItems(has bool) {
	if has {
		fmt.Fprintln(v.out, "cart: has items")
	} else {
		fmt.Fprintln(v.out, "cart: empty")
	}
}

func (v *consoleView) WriteSubtotal(total string) { fmt.Fprintf(v.out, "subtotal: %s\n", total) }
func (v *consoleView) OnCheckout() bool           { return v.page.OnCheckout() }
func (v *consoleView) SummaryAvailable() bool     { return true }

func (v *consoleView) WriteProductCount(label string) { fmt.Fprintf(v.out, "products: %s\n", label) }

func (v *consoleView) WriteCombinedArticlePrice(s string) {
	fmt.Fprintf(v.out, "articles: %s\n", s)
}

func (v *consoleView) WriteDiscount(s string, visible bool) {
	if visible {
		fmt.Fprintf(v.out, "discount: %s\n", s)
	}
}

func (v *consoleView) WriteTax(s string)      { fmt.Fprintf(v.out, "tax: %s\n", s) }
func (v *consoleView) HasShippingRow() bool   { return true }
func (v *consoleView) WriteShipping(s string) { fmt.Fprintf(v.out, "shipping: %s\n", s) }
func (v *consoleView) WriteTotal(s string)    { fmt.Fprintf(v.out, "total: %s\n", s) }

func (v *consoleView) WriteItemPrice(variantID int64, original, discounted string) {
	if discounted != "" {
		fmt.Fprintf(v.out, "variant %d: %s (was %s)\n", variantID, discounted, original)
		return
	}
	fmt.Fprintf(v.out, "variant %d: %s\n", variantID, original)
}

func main() {
	onCheckout := flag.Bool("checkout", true, "treat the session as being on the checkout flow")
	removeVariant := flag.Int64("remove", 0, "variant id to remove after the initial fetch")
	switchLocale := flag.String("switch-locale", "", "print the storefront URL rewritten for this locale and exit")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[web] ", log.LstdFlags|log.LUTC)

	if *switchLocale != "" {
		fmt.Println(locale.SwitchURL(cfg.BackendBaseURL+"/w/cart", *switchLocale))
		return
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		logger.Fatalf("cookie jar: %v", err)
	}
	httpClient := &http.Client{Jar: jar}

	bus := event.NewBus()
	store := cartstate.New(bus, logger)
	page := &consolePage{checkout: *onCheckout, logger: logger}
	view := &consoleView{page: page, out: os.Stdout}
	formatter := price.NewFormatter(cfg.Locale, cfg.CurrencySuffix)

	renderer := checkout.NewRenderer(view, formatter.Format, cfg.ShowTaxes, checkout.DefaultLabels, logger)
	renderer.Bind(bus)
	bus.OnItemCountChanged(func(count int) {
		logger.Printf("cart items: %d", count)
	})

	client := cartsync.New(httpClient, cfg.BackendBaseURL, store, page, nil, logger)

	ctx := context.Background()
	client.FetchAndStore(ctx)

	if *removeVariant != 0 {
		client.RemoveLineItem(ctx, *removeVariant)
	}
}
