package geom

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"
)

const (
	tolerance   = 0.01
	minChildren = 4
	maxChildren = 16
	dimensions  = 2
)

// indexedPos wraps a marker position for R-tree indexing.
type indexedPos struct {
	idx  int
	pos  LatLng
	rect *rtreego.Rect
}

func (ip *indexedPos) Bounds() *rtreego.Rect {
	return ip.rect
}

// Index answers box queries over marker positions. Results are list
// indices into the slice the index was built from.
type Index struct {
	tree *rtreego.Rtree
	size int
}

// NewIndex builds an index over positions. Non-finite positions are skipped.
func NewIndex(positions []LatLng) *Index {
	ix := &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
	for i, p := range positions {
		if !p.Finite() {
			continue
		}
		ix.tree.Insert(&indexedPos{
			idx:  i,
			pos:  p,
			rect: rtreego.Point{p.Lng, p.Lat}.ToRect(tolerance),
		})
		ix.size++
	}
	return ix
}

// Size returns the number of indexed positions.
func (ix *Index) Size() int { return ix.size }

// Within returns the list indices inside box, in list order.
func (ix *Index) Within(box BBox) ([]int, error) {
	if ix.size == 0 {
		return nil, nil
	}
	if !box.Valid() {
		return nil, fmt.Errorf("invalid search box: %+v", box)
	}
	rect, err := rtreego.NewRect(rtreego.Point{box.MinX, box.MinY}, []float64{box.Width(), box.Height()})
	if err != nil {
		return nil, fmt.Errorf("invalid search box: %w", err)
	}
	results := ix.tree.SearchIntersect(rect)
	out := make([]int, 0, len(results))
	for _, r := range results {
		item, ok := r.(*indexedPos)
		if !ok || !box.Contains(item.pos) {
			continue
		}
		out = append(out, item.idx)
	}
	sort.Ints(out)
	return out, nil
}
