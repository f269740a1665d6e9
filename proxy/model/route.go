package model

// Route maps a literal path prefix to a backend base URL.
type Route struct {
	Prefix  string `json:"prefix" validate:"required,startswith=/"`
	Backend string `json:"backend" validate:"required,url"`
}

// RouteTable is matched in declaration order; the first matching prefix wins.
type RouteTable []Route
