// SPDX-License-Identifier: MIT

// Package energy implements the CAPY mixing scores of two populations laid out
// over the nodes of a graph.
//
// Given population vectors x, y and an adjacency A, every score is built from
// the inner product
//
//	⟨x, y⟩ = xᵗ · (A + I) · y
//
// which counts, over all ordered node pairs including self-pairs, the
// weighted product of x-mass and y-mass. With xx = ⟨x,x⟩, xy = ⟨x,y⟩ and
// yy = ⟨y,y⟩:
//
//	HalfCapy = ½·[xx/(xx+xy) + yy/(yy+xy)]     (half-edge variant)
//	EdgeCapy = ½·[xx/(xx+2xy) + yy/(yy+2xy)]   (edge variant)
//
// Both lie in [0,1]: 1 means perfectly segregated groups, low values mean
// the groups share neighborhoods.
//
// Every function accepts any matrix.Adjacency. *matrix.Dense and *matrix.CSR
// give the same results within floating-point tolerance; DenseInnerProduct and
// SparseInnerProduct pin one representation explicitly.
//
// A zero denominator (a group with no members) returns ErrDegenerate rather
// than a NaN.
package energy
