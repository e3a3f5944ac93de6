package models

import "fmt"

// Vertical identifies one of the supported business categories. Every
// record set, metric set and analysis result belongs to exactly one
// vertical.
type Vertical string

const (
	VerticalAgriculture   Vertical = "Agriculture"
	VerticalManufacturing Vertical = "Manufacturing"
	VerticalRetail        Vertical = "Retail"
	VerticalLogistics     Vertical = "Logistics"
	VerticalEcommerce     Vertical = "Ecommerce"
)

// Verticals lists all supported verticals in a stable order.
var Verticals = []Vertical{
	VerticalAgriculture,
	VerticalManufacturing,
	VerticalRetail,
	VerticalLogistics,
	VerticalEcommerce,
}

// ParseVertical maps a URL path segment to a Vertical.
func ParseVertical(s string) (Vertical, error) {
	switch s {
	case "agriculture", "agricultural":
		return VerticalAgriculture, nil
	case "manufacturing":
		return VerticalManufacturing, nil
	case "retail":
		return VerticalRetail, nil
	case "logistics":
		return VerticalLogistics, nil
	case "ecommerce":
		return VerticalEcommerce, nil
	}
	return "", fmt.Errorf("unknown vertical: %q", s)
}

// Slug returns the lowercase path segment for the vertical.
func (v Vertical) Slug() string {
	switch v {
	case VerticalAgriculture:
		return "agriculture"
	case VerticalManufacturing:
		return "manufacturing"
	case VerticalRetail:
		return "retail"
	case VerticalLogistics:
		return "logistics"
	case VerticalEcommerce:
		return "ecommerce"
	}
	return string(v)
}

func (v Vertical) String() string { return string(v) }
