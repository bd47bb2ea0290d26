package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"listmerge/internal/model"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultItemsPath locates the items array in the endpoint's response body.
const DefaultItemsPath = "$.lists"

// Decode extracts items from a response body. itemsPath is a JSONPath expression
// selecting the array of item records.
func Decode(body []byte, itemsPath string) ([]model.Item, error) {
	itemsPath = strings.TrimSpace(itemsPath)
	if itemsPath == "" || itemsPath == DefaultItemsPath {
		return decodeDocument(body)
	}

	// UseNumber keeps numeric ids as their literal text through the re-encode below.
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	sel, err := jsonpath.Get(itemsPath, doc)
	if err != nil {
		return nil, fmt.Errorf("items path %s: %w", itemsPath, err)
	}
	raw, ok := sel.([]any)
	if !ok {
		return nil, fmt.Errorf("items path %s: expected an array, got %T", itemsPath, sel)
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if err := validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

// decodeDocument handles the endpoint's own body shape without a JSONPath pass.
func decodeDocument(body []byte) ([]model.Item, error) {
	var doc model.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if doc.Lists == nil {
		return nil, fmt.Errorf("items path %s: expected an array", DefaultItemsPath)
	}
	if err := validate(doc.Lists); err != nil {
		return nil, err
	}
	return doc.Lists, nil
}

func validate(items []model.Item) error {
	for i, it := range items {
		if it.ID == "" {
			return fmt.Errorf("decode items: record %d has no id", i)
		}
		if it.ListNumber == "" {
			return fmt.Errorf("decode items: record %s has no list_number", it.ID)
		}
	}
	return nil
}
