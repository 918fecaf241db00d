package config

// LodgingNights enumerates the tour nights that get a lodging assignment.
// The remaining nights are ride days with prearranged group lodging.
var LodgingNights = []int{1, 2, 6, 7, 8}

func IsLodgingNight(day int) bool {
	for _, n := range LodgingNights {
		if n == day {
			return true
		}
	}
	return false
}
