// Package catalog reads star catalogues from CSV files into the immutable
// Star records the renderer consumes. A load either yields every row in the
// file, in file order, or fails with a typed error; bad rows are never
// skipped silently.
package catalog
