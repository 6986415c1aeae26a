// Package render turns a star catalogue into a themed sky-chart raster
// image. It owns the plot geometry (inverted right-ascension axis,
// magnitude-derived marker sizes, optional name labels) and delegates the
// actual drawing to gonum/plot.
package render
