package tiles

// Exclude deletes every cell of cells whose (LocX, Row) falls inside any of
// rects and returns how many were removed.
//
// All rects are validated before anything is touched; an inverted rect
// returns an INVALID_RECT error and leaves cells unchanged.
func Exclude(cells map[Coord]Cell, rects []Rect) (int, error) {
	for _, r := range rects {
		if err := r.Validate(); err != nil {
			return 0, err
		}
	}
	if len(rects) == 0 {
		return 0, nil
	}

	removed := 0
	for k, c := range cells {
		for _, r := range rects {
			if r.Contains(c.LocX, k.Row) {
				delete(cells, k)
				removed++
				break
			}
		}
	}
	return removed, nil
}
