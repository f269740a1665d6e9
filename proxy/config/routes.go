package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"encore.app/proxy/model"
)

// ParseRoutes decodes a JSON object of prefix -> backend base URL entries.
// Entries are returned in the order they appear in the document, which is
// the order the router matches them in.
func ParseRoutes(r io.Reader) (model.RouteTable, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read routes: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("routes must be a JSON object of prefix to backend URL")
	}

	var table model.RouteTable
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read route prefix: %w", err)
		}
		prefix := tok.(string)

		var backend string
		if err := dec.Decode(&backend); err != nil {
			return nil, fmt.Errorf("read backend for prefix %q: %w", prefix, err)
		}

		if seen[prefix] {
			return nil, fmt.Errorf("duplicate route prefix %q", prefix)
		}
		seen[prefix] = true

		table = append(table, model.Route{Prefix: prefix, Backend: backend})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read routes: %w", err)
	}
	return table, nil
}
