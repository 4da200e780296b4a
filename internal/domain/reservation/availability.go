package reservation

import (
	"slices"
	"time"
)

// FreeWindows returns the parts of window not covered by any busy slot, in
// chronological order. Busy slots are closed intervals, so where a free window
// meets a busy slot the shared instant belongs to the busy slot.
func FreeWindows(window TimeSlot, busy []TimeSlot) []TimeSlot {
	sorted := make([]TimeSlot, 0, len(busy))
	for _, b := range busy {
		if b.end.Before(window.start) || b.start.After(window.end) {
			continue
		}
		sorted = append(sorted, b)
	}
	slices.SortFunc(sorted, func(a, b TimeSlot) int {
		return a.start.Compare(b.start)
	})

	var free []TimeSlot
	cursor := window.start
	for _, b := range sorted {
		if b.start.After(cursor) {
			free = append(free, TimeSlot{start: cursor, end: minTime(b.start, window.end)})
		}
		if b.end.After(cursor) {
			cursor = b.end
		}
		if !cursor.Before(window.end) {
			return free
		}
	}
	if cursor.Before(window.end) {
		free = append(free, TimeSlot{start: cursor, end: window.end})
	}
	return free
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
