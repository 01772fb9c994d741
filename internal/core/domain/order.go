package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const OrderCodePrefix = "PEDIDO-"

// OrderLine is a product on an order together with its quantity.
type OrderLine struct {
	Product
	Quantity int `json:"numProductos"`
}

// Order (pedido) sells one or more products to a client.
type Order struct {
	Code             string          `json:"codigo"`
	ClientID         string          `json:"idCliente"`
	SalesAssistantID *string         `json:"idAsistenteVentas"`
	Address          string          `json:"direccion"`
	RegisteredAt     time.Time       `json:"fechaRegistro"`
	Status           string          `json:"estado"`
	TotalCost        decimal.Decimal `json:"costoTotal"`

	Client         *Principal  `json:"cliente,omitempty"`
	SalesAssistant *Principal  `json:"asistenteVentas,omitempty"`
	Products       []OrderLine `json:"productos"`
}

// NewOrderCode returns a fresh order identifier.
func NewOrderCode() string {
	return OrderCodePrefix + uuid.NewString()
}

// PriceLines joins requested lines with the resolved products. Lines whose
// code did not resolve are dropped; the rest keep the request order.
func PriceLines(lines []LineItem, products []Product) []OrderLine {
	byCode := make(map[string]Product, len(products))
	for _, p := range products {
		byCode[p.Code] = p
	}
	out := make([]OrderLine, 0, len(lines))
	for _, l := range MergeLines(lines) {
		p, ok := byCode[l.Code]
		if !ok {
			continue
		}
		out = append(out, OrderLine{Product: p, Quantity: l.Quantity})
	}
	return out
}

// OrderTotal is the sum of price times quantity over lines.
func OrderTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// LineItems strips the product details from priced lines.
func LineItems(lines []OrderLine) []LineItem {
	out := make([]LineItem, len(lines))
	for i, l := range lines {
		out[i] = LineItem{Code: l.Code, Quantity: l.Quantity}
	}
	return out
}

// Codes returns the distinct codes of items.
func Codes(items []LineItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Code)
	}
	return UniqueCodes(out)
}
