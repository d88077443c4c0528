package reports

import "testing"

func TestClassifyStock(t *testing.T) {
	cases := []struct {
		name                        string
		available, minimum, maximum int
		want                        string
	}{
		{"out of stock", 0, 5, 20, StockStatusOutOfStock},
		{"negative treated as out", -1, 5, 20, StockStatusOutOfStock},
		{"critical below half minimum", 2, 6, 20, StockStatusCritical},
		{"low below minimum", 4, 6, 20, StockStatusLow},
		{"at minimum is normal", 6, 6, 20, StockStatusNormal},
		{"overstock above maximum", 25, 6, 20, StockStatusOverstock},
		{"at maximum is normal", 20, 6, 20, StockStatusNormal},
		{"no maximum configured", 100, 6, 0, StockStatusNormal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyStock(tc.available, tc.minimum, tc.maximum); got != tc.want {
				t.Fatalf("classifyStock(%d, %d, %d) = %s, want %s",
					tc.available, tc.minimum, tc.maximum, got, tc.want)
			}
		})
	}
}
