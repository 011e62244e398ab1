package grid

// Window is the slice of rows that must be materialized for one render
// pass, plus the geometry the caller needs to place it inside the full
// virtual extent. EndRow is exclusive.
type Window struct {
	StartRow        int64
	EndRow          int64
	FirstVisibleRow int64

	// TranslateYPx positions the materialized block so its first row
	// lines up with where StartRow sits in the full content.
	TranslateYPx int64

	// TotalContentHeightPx sizes the scrollable extent as if every row
	// existed, keeping the scrollbar honest.
	TotalContentHeightPx int64
}

// Rows returns the number of materialized rows.
func (w Window) Rows() int64 {
	return w.EndRow - w.StartRow
}

// Contains reports whether row falls inside [StartRow, EndRow).
func (w Window) Contains(row int64) bool {
	return row >= w.StartRow && row < w.EndRow
}

// ClampScroll limits scrollOffsetPx to [0, totalRows*rowHeightPx -
// viewportHeightPx], or to 0 when the content is shorter than the
// viewport.
func ClampScroll(scrollOffsetPx, totalRows, rowHeightPx, viewportHeightPx int64) int64 {
	max := totalRows*rowHeightPx - viewportHeightPx
	if max < 0 {
		max = 0
	}
	if scrollOffsetPx > max {
		scrollOffsetPx = max
	}
	if scrollOffsetPx < 0 {
		scrollOffsetPx = 0
	}
	return scrollOffsetPx
}

// ComputeWindow maps a scroll position to the row range that must exist:
// the rows covering the viewport plus overscanRows on each side, clipped
// to [0, totalRows). rowHeightPx must be positive. The function is pure;
// callers re-invoke it on every scroll or resize.
func ComputeWindow(totalRows, rowHeightPx, viewportHeightPx, scrollOffsetPx, overscanRows int64) Window {
	if totalRows <= 0 {
		return Window{}
	}

	scrollOffsetPx = ClampScroll(scrollOffsetPx, totalRows, rowHeightPx, viewportHeightPx)

	firstVisible := scrollOffsetPx / rowHeightPx
	if firstVisible >= totalRows {
		firstVisible = totalRows - 1
	}
	visibleCount := (viewportHeightPx + rowHeightPx - 1) / rowHeightPx

	start := firstVisible - overscanRows
	if start < 0 {
		start = 0
	}
	end := firstVisible + visibleCount + overscanRows
	if end > totalRows {
		end = totalRows
	}

	return Window{
		StartRow:             start,
		EndRow:               end,
		FirstVisibleRow:      firstVisible,
		TranslateYPx:         start * rowHeightPx,
		TotalContentHeightPx: totalRows * rowHeightPx,
	}
}
