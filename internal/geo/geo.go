// Package geo holds the distance math used by the nearby-store search.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const EarthRadiusKm = 6371.0

// one degree of latitude, in km
const kmPerDegree = math.Pi * EarthRadiusKm / 180

var ErrInvalidCoordinates = errors.New("invalid coordinates")

type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// DistanceKm is the Haversine great-circle distance between two points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLng := toRadians(lng2 - lng1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func (p Point) DistanceTo(o Point) float64 {
	return DistanceKm(p.Latitude, p.Longitude, o.Latitude, o.Longitude)
}

func ValidateCoordinates(lat, lng float64) (Point, error) {
	switch {
	case math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0):
		return Point{}, fmt.Errorf("%w: coordinates must be numeric", ErrInvalidCoordinates)
	case lat < -90 || lat > 90:
		return Point{}, fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidCoordinates)
	case lng < -180 || lng > 180:
		return Point{}, fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidCoordinates)
	}
	return Point{Latitude: lat, Longitude: lng}, nil
}

func ParseCoordinates(latStr, lngStr string) (Point, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: latitude must be numeric", ErrInvalidCoordinates)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: longitude must be numeric", ErrInvalidCoordinates)
	}
	return ValidateCoordinates(lat, lng)
}

// FormatDistance renders meters below 1 km and kilometers with one decimal otherwise.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}

// Box is a lat/lng rectangle enclosing a search circle. When FilterLng is false the
// longitude bounds must be ignored (the circle reaches a pole or wraps the antimeridian).
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	FilterLng      bool
}

func BoundingBox(p Point, radiusKm float64) Box {
	dLat := radiusKm / kmPerDegree
	b := Box{
		MinLat: math.Max(p.Latitude-dLat, -90),
		MaxLat: math.Min(p.Latitude+dLat, 90),
	}

	if b.MinLat <= -90 || b.MaxLat >= 90 {
		return b
	}

	// widest longitude span occurs at the latitude furthest from the equator
	cos := math.Cos(toRadians(math.Max(math.Abs(b.MinLat), math.Abs(b.MaxLat))))
	if cos <= 0 {
		return b
	}
	dLng := radiusKm / (kmPerDegree * cos)
	if dLng >= 180 || p.Longitude-dLng < -180 || p.Longitude+dLng > 180 {
		return b
	}

	b.MinLng = p.Longitude - dLng
	b.MaxLng = p.Longitude + dLng
	b.FilterLng = true
	return b
}

func (b Box) Contains(p Point) bool {
	if p.Latitude < b.MinLat || p.Latitude > b.MaxLat {
		return false
	}
	if b.FilterLng && (p.Longitude < b.MinLng || p.Longitude > b.MaxLng) {
		return false
	}
	return true
}
