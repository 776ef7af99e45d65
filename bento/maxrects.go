package bento

// maxRectsBin tracks the maximal free rectangles of a single bin. Callers are
// expected to pass effective (padding- and extrusion-inflated) sizes to Insert;
// the bin itself knows nothing about sprites.
type maxRectsBin struct {
	width  int
	height int
	free   []Rect
	used   []Rect
}

func newMaxRectsBin(width, height int) *maxRectsBin {
	return &maxRectsBin{
		width:  width,
		height: height,
		free:   []Rect{{0, 0, width, height}},
	}
}

const worstScore = int(^uint(0) >> 1)

// Insert places a w x h rectangle at the position chosen by the heuristic.
// The second return is false when no free rectangle admits the size.
// Ties on both scores resolve to the smaller y, then the smaller x.
func (b *maxRectsBin) Insert(w, h int, heur Heuristic) (Rect, bool) {
	var best Rect
	bestPrimary, bestSecondary := worstScore, worstScore
	found := false
	for _, f := range b.free {
		if f.W < w || f.H < h {
			continue
		}
		cand := Rect{f.X, f.Y, w, h}
		primary, secondary := b.score(f, cand, heur)
		better := primary < bestPrimary ||
			(primary == bestPrimary && secondary < bestSecondary) ||
			(primary == bestPrimary && secondary == bestSecondary &&
				(cand.Y < best.Y || (cand.Y == best.Y && cand.X < best.X)))
		if !found || better {
			best = cand
			bestPrimary, bestSecondary = primary, secondary
			found = true
		}
	}
	if !found {
		return Rect{}, false
	}
	b.place(best)
	return best, true
}

func (b *maxRectsBin) score(f, cand Rect, heur Heuristic) (int, int) {
	dw := f.W - cand.W
	dh := f.H - cand.H
	short := min(dw, dh)
	long := max(dw, dh)
	switch heur {
	case BestShortSideFit:
		return short, long
	case BestLongSideFit:
		return long, short
	case BestAreaFit:
		return f.Area() - cand.Area(), short
	case BottomLeft:
		return f.Y + cand.H, f.X
	case ContactPoint:
		return -b.contactLength(cand), 0
	}
	return worstScore, worstScore
}

// contactLength is the length of cand's perimeter that coincides with the bin
// edges or with an already-placed rectangle's edge.
func (b *maxRectsBin) contactLength(cand Rect) int {
	length := 0
	if cand.X == 0 {
		length += cand.H
	}
	if cand.Right() == b.width {
		length += cand.H
	}
	if cand.Y == 0 {
		length += cand.W
	}
	if cand.Bottom() == b.height {
		length += cand.W
	}
	for _, u := range b.used {
		if u.X == cand.Right() || u.Right() == cand.X {
			length += spanOverlap(cand.Y, cand.Bottom(), u.Y, u.Bottom())
		}
		if u.Y == cand.Bottom() || u.Bottom() == cand.Y {
			length += spanOverlap(cand.X, cand.Right(), u.X, u.Right())
		}
	}
	return length
}

func spanOverlap(a0, a1, b0, b1 int) int {
	lo := max(a0, b0)
	hi := min(a1, b1)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// place commits r and rebuilds the free list: every intersecting free rect is
// replaced by up to four maximal children, then contained rects are pruned.
func (b *maxRectsBin) place(r Rect) {
	next := make([]Rect, 0, len(b.free)+3)
	for _, f := range b.free {
		if !f.Intersects(r) {
			next = append(next, f)
			continue
		}
		if r.X > f.X {
			next = append(next, Rect{f.X, f.Y, r.X - f.X, f.H})
		}
		if r.Right() < f.Right() {
			next = append(next, Rect{r.Right(), f.Y, f.Right() - r.Right(), f.H})
		}
		if r.Y > f.Y {
			next = append(next, Rect{f.X, f.Y, f.W, r.Y - f.Y})
		}
		if r.Bottom() < f.Bottom() {
			next = append(next, Rect{f.X, r.Bottom(), f.W, f.Bottom() - r.Bottom()})
		}
	}
	b.free = pruneContained(next)
	b.used = append(b.used, r)
}

func pruneContained(rects []Rect) []Rect {
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			if rects[j].ContainsRect(rects[i]) {
				rects = append(rects[:i], rects[i+1:]...)
				i--
				break
			}
			if rects[i].ContainsRect(rects[j]) {
				rects = append(rects[:j], rects[j+1:]...)
				j--
			}
		}
	}
	return rects
}

// extent is the smallest width/height covering every placed rectangle.
func (b *maxRectsBin) extent() (int, int) {
	w, h := 0, 0
	for _, u := range b.used {
		w = max(w, u.Right())
		h = max(h, u.Bottom())
	}
	return w, h
}

// usedArea is the total area of all placed rectangles.
func (b *maxRectsBin) usedArea() int {
	area := 0
	for _, u := range b.used {
		area += u.Area()
	}
	return area
}
