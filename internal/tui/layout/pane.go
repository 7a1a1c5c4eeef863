package layout

// CalculateResultsHeight computes the rows left for the results list once
// the header and an open dropdown are drawn. Returns at least
// MinResultsHeight.
func CalculateResultsHeight(terminalHeight, dropdownLines int, cfg ScreenConfig) int {
	height := terminalHeight - cfg.HeaderLines - dropdownLines
	if height < cfg.MinResultsHeight {
		return cfg.MinResultsHeight
	}
	return height
}

// CalculateVisibleResults computes how many bookmarks fit in height rows.
func CalculateVisibleResults(height int, cfg ScreenConfig) int {
	per := cfg.LinesPerResult
	if per < 1 {
		per = 1
	}
	n := height / per
	if n < 1 {
		return 1
	}
	return n
}

// CalculateItemWidth computes the width available for row content.
func CalculateItemWidth(terminalWidth int, cfg ScreenConfig) int {
	width := terminalWidth - cfg.ContentPadding
	if width < 1 {
		return 1
	}
	return width
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}

// CalculateVisibleListItems computes the start and end indices for a scrollable list.
// Returns (start, end) where items[start:end] should be displayed.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
