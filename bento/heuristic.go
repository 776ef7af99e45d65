package bento

import "fmt"

// Heuristic selects how the packer scores candidate free rectangles when
// inserting a sprite.
type Heuristic int

const (
	BestShortSideFit Heuristic = iota
	BestLongSideFit
	BestAreaFit
	BottomLeft
	ContactPoint
)

// Heuristics lists every placement rule in evaluation order.
var Heuristics = []Heuristic{
	BestShortSideFit,
	BestLongSideFit,
	BestAreaFit,
	BottomLeft,
	ContactPoint,
}

var heuristicNames = map[Heuristic]string{
	BestShortSideFit: "best-short-side-fit",
	BestLongSideFit:  "best-long-side-fit",
	BestAreaFit:      "best-area-fit",
	BottomLeft:       "bottom-left",
	ContactPoint:     "contact-point",
}

func (h Heuristic) String() string {
	if name, ok := heuristicNames[h]; ok {
		return name
	}
	return fmt.Sprintf("heuristic(%d)", int(h))
}

// ParseHeuristic resolves one of the five placement rule names.
func ParseHeuristic(name string) (Heuristic, error) {
	for _, h := range Heuristics {
		if heuristicNames[h] == name {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown heuristic %q", ErrInvalidConfig, name)
}
