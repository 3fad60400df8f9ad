package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCoordinates parses an event's "lat,lng" coordinate string.
func ParseCoordinates(s string) (lat, lng float64, err error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("coordinates %q: want \"lat,lng\"", s)
	}

	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("coordinates %q: bad latitude: %w", s, err)
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("coordinates %q: bad longitude: %w", s, err)
	}

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("coordinates %q: out of range", s)
	}
	return lat, lng, nil
}
