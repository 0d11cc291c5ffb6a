package catalog

import (
	"encoding/json"
	"fmt"
)

// Product is a single catalog entry. Products are immutable once loaded;
// the catalog is the source of truth and is never mutated by handlers.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// catalogDocument is the on-disk shape of a catalog file.
type catalogDocument struct {
	Products []Product `json:"products"`
}

// UnmarshalJSON accepts both string and numeric ids, since catalog files
// exported from spreadsheets commonly carry numeric ids.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		ID json.RawMessage `json:"id"`
		*alias
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.ID) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(aux.ID, &s); err == nil {
		p.ID = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(aux.ID, &n); err == nil {
		p.ID = n.String()
		return nil
	}
	return fmt.Errorf("product id must be a string or number, got %s", string(aux.ID))
}

// Span is a half-open [Start, End) byte range within a product name that
// matches the active search term.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ProductView is a Product decorated with search-match spans for rendering.
type ProductView struct {
	Product
	MatchSpans []Span `json:"match_spans,omitempty"`
}
