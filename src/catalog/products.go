// Package catalog serves the storefront product list: a static set of
// default products merged with admin-set per-product overrides.
package catalog

import "empadas-server/src/models"

// DefaultProducts is the static catalog. Price and availability can be
// overridden per product by the admin; everything else is fixed content.
var DefaultProducts = []models.Product{
	{
		ID:           "empada-frango",
		Name:         "Empada de Frango",
		Description:  "Empada tradicional recheada com frango desfiado e tempero caseiro",
		Price:        10,
		Image:        "/images/products/empada-frango.jpg",
		Category:     "classic",
		Availability: models.AvailabilityAvailable,
	},
	{
		ID:           "empada-palmito",
		Name:         "Empada de Palmito",
		Description:  "Empada delicada com palmito fresco e cream cheese",
		Price:        10,
		Image:        "/images/products/empada-palmito.jpg",
		Category:     "premium",
		Availability: models.AvailabilityAvailable,
	},
	{
		ID:           "empada-camarao",
		Name:         "Empada de Camarão",
		Description:  "Empada sofisticada com camarão fresco e tempero especial",
		Price:        10,
		Image:        "/images/products/empada-camarao.jpg",
		Category:     "premium",
		Availability: models.AvailabilityAvailable,
	},
	{
		ID:           "empada-queijo",
		Name:         "Empada de Queijo",
		Description:  "Empada com queijo meia cura e ervas finas",
		Price:        10,
		Image:        "/images/products/empada-queijo.jpg",
		Category:     "classic",
		Availability: models.AvailabilityAvailable,
	},
	{
		ID:           "empada-cogumelo",
		Name:         "Empada de Cogumelo",
		Description:  "Empada vegetariana com cogumelo fresco e alho",
		Price:        10,
		Image:        "/images/products/empada-cogumelo.jpg",
		Category:     "vegetarian",
		Availability: models.AvailabilityAvailable,
	},
	{
		ID:           "empada-carne",
		Name:         "Empada de Carne Seca",
		Description:  "Empada com carne seca desfiada e cebola caramelizada",
		Price:        10,
		Image:        "/images/products/empada-carne.jpg",
		Category:     "classic",
		Availability: models.AvailabilityAvailable,
	},
}

// Order quantity bounds enforced at checkout.
const (
	MinOrderQuantity = 1
	MaxOrderQuantity = 100
)
