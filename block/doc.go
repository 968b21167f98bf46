// Package block implements the pure, flat block document model for Lattice.
//
// The document is an ordered sequence of blocks. Hierarchy is expressed by a
// single non-negative Indent attribute per block: a block's children are the
// contiguous run of following blocks with strictly greater indent. Collapse
// state lives on parent-capable blocks; visibility of deeper blocks is always
// derived, never stored.
package block
