package folio

import "testing"

func TestParseLocaleNumber(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want string
	}{
		{name: "plain integer", text: "42", want: "42"},
		{name: "standard decimal", text: "1234.56", want: "1234.56"},
		{name: "standard with thousands", text: "1,234.56", want: "1234.56"},
		{name: "european decimal", text: "1.234,56", want: "1234.56"},
		{name: "european without thousands", text: "234,56", want: "234.56"},
		{name: "accounting negative", text: "(99.50)", want: "-99.5"},
		{name: "explicit negative", text: "-1,000.25", want: "-1000.25"},
		{name: "currency prefix", text: "₹ 1,234.50", want: "1234.5"},
		{name: "quoted", text: `"2,500.00"`, want: "2500"},
		{name: "internal spaces", text: "1 234.56", want: "1234.56"},
		{name: "empty", text: "", want: "0"},
		{name: "garbage", text: "n/a", want: "0"},
		{name: "lone separators", text: ",.", want: "0"},
		{name: "large european", text: "1.234.567,89", want: "1234567.89"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseLocaleNumber(tc.text)
			if got.String() != tc.want {
				t.Errorf("ParseLocaleNumber(%q) = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	testCases := []struct {
		text string
		want string
	}{
		{"Date", "date"},
		{"  Prix  ", "prix"},
		{"Exécuté", "execute"},
		{"Código", "codigo"},
		{"QTY.", "qty."},
	}
	for _, tc := range testCases {
		if got := NormalizeHeader(tc.text); got != tc.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}
