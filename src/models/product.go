package models

import "fmt"

type ProductAvailability string

const (
	AvailabilityAvailable   ProductAvailability = "available"
	AvailabilityOnDemand    ProductAvailability = "on_demand"
	AvailabilityUnavailable ProductAvailability = "unavailable"
)

func (a ProductAvailability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityOnDemand, AvailabilityUnavailable:
		return true
	}
	return false
}

// Product is a storefront catalog entry after defaults and overrides are merged.
type Product struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Price        float64             `json:"price"`
	Image        string              `json:"image"`
	Category     string              `json:"category"`
	Availability ProductAvailability `json:"availability"`
}

// CatalogProductOverride is a sparse admin-set deviation from a product's
// defaults. Nil fields mean "keep the default".
type CatalogProductOverride struct {
	ID           string               `json:"id"`
	Price        *float64             `json:"price,omitempty"`
	Availability *ProductAvailability `json:"availability,omitempty"`
}

func (o CatalogProductOverride) GetID() string { return o.ID }

func (o CatalogProductOverride) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("override id is required")
	}
	if o.Price != nil && *o.Price < 0 {
		return fmt.Errorf("override price must be non-negative")
	}
	if o.Availability != nil && !o.Availability.Valid() {
		return fmt.Errorf("invalid availability: %q", *o.Availability)
	}
	return nil
}
