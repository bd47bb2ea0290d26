package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ListID identifies a list. The API sends list numbers as JSON numbers, but merged
// lists are synthesized, so ids are kept as strings throughout.
type ListID string

// ItemID identifies an item.
type ItemID string

type Item struct {
	ID          ItemID `json:"id"`
	ListNumber  ListID `json:"list_number"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Document is the body returned by the list-data endpoint.
type Document struct {
	Lists []Item `json:"lists"`
}

func (id *ListID) UnmarshalJSON(b []byte) error {
	s, err := scalarString(b)
	if err != nil {
		return fmt.Errorf("list_number: %w", err)
	}
	*id = ListID(s)
	return nil
}

func (id *ItemID) UnmarshalJSON(b []byte) error {
	s, err := scalarString(b)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ItemID(s)
	return nil
}

// scalarString accepts a JSON string or number and returns it as a trimmed string.
// Numbers are canonicalised the way JavaScript prints them as object keys, so 1, 1.0
// and 1e0 all become "1". Integers that fit in int64 keep every digit.
func scalarString(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", string(b))
	}
	return canonicalNumber(n.String()), nil
}

func canonicalNumber(lit string) string {
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return lit
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
