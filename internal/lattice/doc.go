// Package lattice owns the spatial layout of a regular 3-D lattice of cells.
//
// Responsibilities: mapping between a linear cell index, an integer grid
// coordinate and a world-space position; scaling cell size and spacing under
// optional per-cell maxima; resolving the lattice origin from a live anchor or
// manual values; solving a uniform auto-scale factor against world bounds.
// Key types: Grid, CellLayout, Origin, Transform, Coord, Signal.
//
// Index order is y outermost, then x, then z fastest-varying. Persisted
// index-based data depends on it, so it must not change.
//
// Nothing here stores cell contents or performs I/O. Instances are not safe
// for concurrent mutation; callers synchronise externally.
package lattice
