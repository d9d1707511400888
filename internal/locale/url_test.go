package locale

import "testing"

func TestSwitchURL(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		locale string
		want   string
	}{
		{
			name:   "replaces existing locale segment",
			in:     "https://shop.example/sv/w/cart",
			locale: "en",
			want:   "https://shop.example/en/w/cart",
		},
		{
			name:   "prepends when no locale present",
			in:     "https://shop.example/w/checkout",
			locale: "sv",
			want:   "https://shop.example/sv/w/checkout",
		},
		{
			name:   "lowercases the new locale",
			in:     "https://shop.example/en/products",
			locale: "SV",
			want:   "https://shop.example/sv/products",
		},
		{
			name:   "uppercase existing locale is still replaced",
			in:     "https://shop.example/EN/products",
			locale: "sv",
			want:   "https://shop.example/sv/products",
		},
		{
			name:   "keeps query and fragment",
			in:     "https://shop.example/sv/search?q=mugg#results",
			locale: "en",
			want:   "https://shop.example/en/search?q=mugg#results",
		},
		{
			name:   "root path",
			in:     "https://shop.example/",
			locale: "en",
			want:   "https://shop.example/en",
		},
		{
			name:   "longer first segment is not a locale",
			in:     "https://shop.example/sale/items",
			locale: "en",
			want:   "https://shop.example/en/sale/items",
		},
		{
			name:   "numeric segment is not a locale",
			in:     "https://shop.example/12/items",
			locale: "en",
			want:   "https://shop.example/en/12/items",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SwitchURL(tc.in, tc.locale); got != tc.want {
				t.Fatalf("SwitchURL(%q, %q) = %q, want %q", tc.in, tc.locale, got, tc.want)
			}
		})
	}
}

func TestSwitchURLUnparsableInput(t *testing.T) {
	in := "https://shop.example/%zz"
	if got := SwitchURL(in, "en"); got != in {
		t.Fatalf("expected unchanged URL on parse failure, got %q", got)
	}
}
