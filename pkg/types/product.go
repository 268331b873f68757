package types

// ProductImage is one entry of a product's JSONB image list.
type ProductImage struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// ProductImages is the JSONB image list.
type ProductImages []ProductImage

// ProductVariant names a choice axis (e.g. "Color") and its options.
type ProductVariant struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// ProductVariants is the JSONB variant list.
type ProductVariants []ProductVariant

// Specification is a display-only key/value pair on a product.
type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Specifications is the JSONB specification list.
type Specifications []Specification
