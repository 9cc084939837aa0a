// Package formats provides parsers for mesh file formats.
package formats

// Note: OBJ geometry parsing is implemented in obj.go, flattening in flatten.go
