package ingestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/poiesic/menukb/normalize"
)

// Catalog is the decoded scraper output in source order.
type Catalog struct {
	Entries []CatalogEntry
	// Rejected holds records whose JSON did not match the schema.
	Rejected []RejectedRecord
	// Duplicates lists keys that appeared more than once. The last
	// occurrence wins and keeps the position of the first.
	Duplicates []string
}

// CatalogEntry pairs a raw catalog key with its record.
type CatalogEntry struct {
	Key    string
	Record RestaurantRecord
}

// RejectedRecord is a catalog record that could not be decoded.
type RejectedRecord struct {
	Key    string
	Reason string
}

// RestaurantRecord is one restaurant as produced by the scraper.
// RestaurantName is optional; the key supplies a fallback.
type RestaurantRecord struct {
	RestaurantName *string       `json:"restaurant_name,omitempty"`
	URL            string        `json:"url,omitempty"`
	Veg            []MenuSection `json:"veg,omitempty"`
	NonVeg         []MenuSection `json:"non_veg,omitempty"`
}

// MenuSection is a named group of items.
type MenuSection struct {
	Section string    `json:"section"`
	Items   []RawItem `json:"items"`
}

// RawItem is a single scraped menu line.
type RawItem struct {
	Name        string    `json:"name"`
	Price       PriceText `json:"price"`
	Description string    `json:"description"`
	IsNonVeg    bool      `json:"is_nonveg"`
}

// PriceText is a free-text price. It decodes from a JSON string, number or null.
type PriceText string

// UnmarshalJSON implements json.Unmarshaler.
func (p *PriceText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceText(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("price must be a string or number: %w", err)
		}
		*p = PriceText(n.String())
	}
	return nil
}

// Source loads a catalog on demand.
type Source func() (*Catalog, error)

// FileSource returns a Source reading the catalog at path.
func FileSource(path string) Source {
	return func() (*Catalog, error) {
		return LoadCatalogFile(path)
	}
}

// LoadCatalogFile reads a catalog from a JSON file.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// LoadCatalog decodes a catalog. The top level is either the mapping of
// restaurant keys to records or an envelope {"data": mapping}.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	top, dups, err := decodeOrderedObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	if len(top) == 1 && top[0].key == "data" {
		if top, dups, err = decodeOrderedObject(top[0].value); err != nil {
			return nil, fmt.Errorf("%w: data: %w", ErrBuild, err)
		}
	}

	catalog := &Catalog{Entries: make([]CatalogEntry, 0, len(top)), Duplicates: dups}
	for _, kv := range top {
		var rec RestaurantRecord
		if err := json.Unmarshal(kv.value, &rec); err != nil {
			catalog.Rejected = append(catalog.Rejected, RejectedRecord{Key: kv.key, Reason: err.Error()})
			continue
		}
		catalog.Entries = append(catalog.Entries, CatalogEntry{Key: kv.key, Record: rec})
	}
	return catalog, nil
}

type rawField struct {
	key   string
	value json.RawMessage
}

// decodeOrderedObject decodes a JSON object into its fields in source order.
// A repeated key replaces the earlier value in place, as encoding/json does
// for maps, and is reported once in dups.
func decodeOrderedObject(data []byte) (fields []rawField, dups []string, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected an object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("key %q: %w", key, err)
		}
		if pos, ok := seen[key]; ok {
			if !slices.Contains(dups, key) {
				dups = append(dups, key)
			}
			fields[pos].value = value
			continue
		}
		seen[key] = len(fields)
		fields = append(fields, rawField{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	if dec.More() {
		return nil, nil, fmt.Errorf("unexpected data after top-level object")
	}
	return fields, dups, nil
}

// ParseKey splits a raw catalog key such as "faasos_hsr_layout" into a
// fallback name ("faasos") and a title-cased location ("Hsr Layout").
// A key without "_" has no location.
func ParseKey(key string) (name, location string) {
	parts := strings.Split(key, "_")
	if len(parts) == 1 {
		return key, ""
	}
	rest := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		if p != "" {
			rest = append(rest, capitalize(p))
		}
	}
	return parts[0], strings.Join(rest, " ")
}

// capitalize upper-cases the first letter of a segment and lower-cases the rest.
func capitalize(s string) string {
	return normalize.Title(strings.ToLower(s))
}
