package label

import "fmt"

// Room labels are a pure derivation from (floor, in-floor sequence);
// nothing about them is ever persisted. The convention is the floor
// number followed by a zero-padded two-digit sequence starting at 1,
// so floor 1 yields "101", "102", ... and floor 12 yields "1201", ...
// The derivation is invertible only by that convention, not by a
// stored mapping.

// Room returns the label for the seq-th room (1-based) on the given floor.
func Room(floor, seq int) string {
	return fmt.Sprintf("%d%02d", floor, seq)
}

// Floor returns the labels of all rooms on a floor with the given
// room count, in sequence order. A zero count yields an empty slice.
func Floor(floor, count int) []string {
	rooms := make([]string, 0, count)
	for seq := 1; seq <= count; seq++ {
		rooms = append(rooms, Room(floor, seq))
	}
	return rooms
}
