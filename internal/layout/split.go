// Package layout splits a baseplate grid into pieces that fit the print bed
// and renders previews of the resulting plan.
package layout

import (
	"fmt"
	"strings"
)

// Piece is one baseplate of a split plan. Offsets are in grid units from the
// plate origin; Index is 1-based and matches the STL file suffix.
type Piece struct {
	Index   int
	Row     int
	Col     int
	Width   int
	Depth   int
	OffsetX int
	OffsetY int
}

// String returns the piece size as "WxD".
func (p Piece) String() string {
	return fmt.Sprintf("%dx%d", p.Width, p.Depth)
}

// NeedsSplit reports whether a grid exceeds the bed maximum on either axis.
func NeedsSplit(width, depth, maxWidth, maxDepth int) bool {
	return width > maxWidth || depth > maxDepth
}

// SplitAxis partitions total into chunks of size, with one final remainder
// chunk when total is not an exact multiple.
func SplitAxis(total, size int) []int {
	if total <= 0 || size <= 0 {
		return nil
	}
	chunks := make([]int, 0, total/size+1)
	for total >= size {
		chunks = append(chunks, size)
		total -= size
	}
	if total > 0 {
		chunks = append(chunks, total)
	}
	return chunks
}

// Split partitions a width x depth grid into pieces no larger than
// maxWidth x maxDepth. Pieces are enumerated row-major: every X piece of the
// first Y row, then the next row. A grid that already fits is returned as a
// single piece.
func Split(width, depth, maxWidth, maxDepth int) ([]Piece, error) {
	if width < 1 || depth < 1 {
		return nil, fmt.Errorf("grid must be at least 1x1 units, got %dx%d", width, depth)
	}
	if maxWidth < 1 || maxDepth < 1 {
		return nil, fmt.Errorf("print bed holds %dx%d units; it must fit at least one unit", maxWidth, maxDepth)
	}

	if !NeedsSplit(width, depth, maxWidth, maxDepth) {
		return []Piece{{Index: 1, Width: width, Depth: depth}}, nil
	}

	xs := SplitAxis(width, maxWidth)
	ys := SplitAxis(depth, maxDepth)

	pieces := make([]Piece, 0, len(xs)*len(ys))
	offY := 0
	for row, d := range ys {
		offX := 0
		for col, w := range xs {
			pieces = append(pieces, Piece{
				Index:   len(pieces) + 1,
				Row:     row,
				Col:     col,
				Width:   w,
				Depth:   d,
				OffsetX: offX,
				OffsetY: offY,
			})
			offX += w
		}
		offY += d
	}
	return pieces, nil
}

// Summary joins piece sizes as "5x5 + 5x5 + 2x5".
func Summary(pieces []Piece) string {
	parts := make([]string, len(pieces))
	for i, p := range pieces {
		parts[i] = p.String()
	}
	return strings.Join(parts, " + ")
}

// PieceFileName returns the STL file name for a piece of a split plan.
func PieceFileName(prefix string, p Piece) string {
	return fmt.Sprintf("%s-%d.stl", prefix, p.Index)
}
