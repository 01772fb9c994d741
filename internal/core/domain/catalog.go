package domain

import "github.com/shopspring/decimal"

// Service is a bookable catalog item.
type Service struct {
	Code        string          `json:"codigo"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	ImageURL    *string         `json:"urlImage"`
}

// Product is a sellable catalog item.
type Product struct {
	Code        string          `json:"codigo"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	ImageURL    *string         `json:"urlImage"`
}
