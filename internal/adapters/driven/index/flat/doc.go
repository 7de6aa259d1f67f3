// Package flat provides an exact brute-force vector index over squared
// Euclidean distance, with binary persistence and a JSON metadata sidecar.
//
// At the dataset sizes SARA works with (low thousands of researchers) an
// exhaustive scan is faster to build and simpler to persist than an
// approximate structure, and recall is exact by construction.
package flat
