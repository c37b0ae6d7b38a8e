// Package d8route converts a digital elevation raster into a directed
// drainage graph (D8 single flow direction) and propagates per-cell
// quantities downslope to cumulative flow. It is the shared routing
// primitive behind sediment-transport, nutrient-retention and general
// watershed computations; raster file handling, reprojection and the
// downstream biophysical models remain external collaborators.
package d8route
