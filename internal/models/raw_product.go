package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawProduct is a product record as delivered by the storefront. Decoding is
// lenient: a field with an unexpected shape is left at its zero value instead
// of failing the whole batch.
type RawProduct struct {
	ID          ProductID    `json:"id"`
	Title       string       `json:"title"`
	Price       Price        `json:"price"`
	Tags        RawTags      `json:"tags"`
	ProductType string       `json:"product_type"`
	BodyHTML    string       `json:"body_html"`
	Variants    []RawVariant `json:"variants"`
}

type RawVariant struct {
	Price             Price `json:"price"`
	InventoryQuantity int   `json:"inventory_quantity"`
}

func (p *RawProduct) UnmarshalJSON(data []byte) error {
	*p = RawProduct{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	_ = json.Unmarshal(fields["id"], &p.ID)
	p.Title = looseString(fields["title"])
	_ = json.Unmarshal(fields["price"], &p.Price)
	_ = json.Unmarshal(fields["tags"], &p.Tags)
	p.ProductType = looseString(fields["product_type"])
	p.BodyHTML = looseString(fields["body_html"])

	var variants []json.RawMessage
	if err := json.Unmarshal(fields["variants"], &variants); err == nil {
		for _, raw := range variants {
			var v RawVariant
			var vf map[string]json.RawMessage
			if err := json.Unmarshal(raw, &vf); err == nil {
				_ = json.Unmarshal(vf["price"], &v.Price)
				_ = json.Unmarshal(vf["inventory_quantity"], &v.InventoryQuantity)
			}
			p.Variants = append(p.Variants, v)
		}
	}
	return nil
}

func looseString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// ProductID accepts both numeric and string identifiers.
type ProductID string

func (id *ProductID) UnmarshalJSON(data []byte) error {
	*id = ProductID(looseString(data))
	return nil
}

// Price is a decimal amount that may be "not available". It is encoded as a
// JSON number when valid and as the string "N/A" otherwise.
type Price struct {
	Amount float64
	Valid  bool
}

const PriceNotAvailable = "N/A"

func NewPrice(amount float64) Price {
	return Price{Amount: amount, Valid: true}
}

// ParsePrice parses a numeric string. Empty, non-numeric, negative or
// non-finite input yields an unavailable price.
func ParsePrice(s string) Price {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Price{}
	}
	return priceFromFloat(f)
}

func priceFromFloat(f float64) Price {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return Price{}
	}
	return NewPrice(f)
}

func (p Price) String() string {
	if !p.Valid {
		return PriceNotAvailable
	}
	return strconv.FormatFloat(p.Amount, 'f', 2, 64)
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return json.Marshal(PriceNotAvailable)
	}
	return json.Marshal(p.Amount)
}

func (p *Price) UnmarshalJSON(data []byte) error {
	*p = Price{}
	if string(data) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*p = priceFromFloat(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = ParsePrice(s)
	}
	return nil
}

// RawTags is the storefront's tag field, which arrives either as one
// comma-joined string or as a list of strings.
type RawTags struct {
	Text   string
	List   []string
	IsList bool
}

func TagsFromString(s string) RawTags {
	return RawTags{Text: s}
}

func TagsFromList(list []string) RawTags {
	return RawTags{List: list, IsList: true}
}

func (t RawTags) MarshalJSON() ([]byte, error) {
	if t.IsList {
		if t.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(t.List)
	}
	return json.Marshal(t.Text)
}

func (t *RawTags) UnmarshalJSON(data []byte) error {
	*t = RawTags{}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		list := make([]string, 0, len(items))
		for _, item := range items {
			if s := looseString(item); s != "" {
				list = append(list, s)
			}
		}
		*t = TagsFromList(list)
		return nil
	}
	t.Text = looseString(data)
	return nil
}

// DecodeRawProducts accepts either a bare product list or an object with a
// "products" list, the shape of a storefront export.
func DecodeRawProducts(data []byte) ([]RawProduct, error) {
	data = bytes.TrimSpace(data)
	var products []RawProduct
	if len(data) > 0 && data[0] == '[' {
		err := json.Unmarshal(data, &products)
		return products, err
	}

	var wrapped struct {
		Products []RawProduct `json:"products"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Products, nil
}
