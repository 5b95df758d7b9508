package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolvePrice_ListPrice(t *testing.T) {
	p := Product{Price: dec("10.00")}

	if got := ResolvePrice(p); !got.Equal(dec("10.00")) {
		t.Fatalf("expected 10.00, got %s", got)
	}
}

func TestResolvePrice_SalePrice(t *testing.T) {
	p := Product{
		Price:     dec("50.00"),
		IsOnSale:  true,
		SalePrice: decimal.NewNullDecimal(dec("40.00")),
	}

	if got := ResolvePrice(p); !got.Equal(dec("40.00")) {
		t.Fatalf("expected 40.00, got %s", got)
	}
}

func TestResolvePrice_OnSaleWithoutSalePrice(t *testing.T) {
	// The catalog rejects this shape on write; a legacy row still resolves
	// to the list price.
	p := Product{Price: dec("25.00"), IsOnSale: true}

	if got := ResolvePrice(p); !got.Equal(dec("25.00")) {
		t.Fatalf("expected 25.00, got %s", got)
	}
}

func TestResolvePrice_NotOnSaleIgnoresSalePrice(t *testing.T) {
	p := Product{
		Price:     dec("30.00"),
		IsOnSale:  false,
		SalePrice: decimal.NewNullDecimal(dec("20.00")),
	}

	if got := ResolvePrice(p); !got.Equal(dec("30.00")) {
		t.Fatalf("expected 30.00, got %s", got)
	}
}
