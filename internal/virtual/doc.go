// Package virtual computes the window of rows and columns a grid has to
// materialize for a given scroll position and viewport size.
//
// The computation is a pure function of its inputs. Rows have a uniform
// height, so the row window is O(1). Columns have individual widths and are
// resolved against a ColumnLayout, a prefix-sum table the caller rebuilds only
// when the column set changes, so each column lookup is a binary search.
//
// Results carry the pixel translation (OffsetY, OffsetX) to apply to the
// materialized block and the extent (TotalHeight, TotalWidth) of the full
// virtual surface. Units are whatever the caller measures in: pixels in a
// browser, cells in a terminal.
package virtual
