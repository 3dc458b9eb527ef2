package pagination

// Window trims a limit+1 result set down to a single page.
//
// Storage queries fetch one row beyond the requested page size; if that
// extra row came back it is removed here and its position becomes the
// cursor. The next query resumes at the cursor row inclusively, so the
// removed row opens the next page. An absent cursor signals end of feed.
func Window[T any](items []T, limit int, cursorOf func(T) Cursor) ([]T, *Cursor) {
	if len(items) <= limit {
		return items, nil
	}
	next := cursorOf(items[limit])
	return items[:limit], &next
}
