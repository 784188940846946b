package domain

// Ride is a published ride as returned by the backend directory.
type Ride struct {
	ID            int64   `json:"id"`
	FromLocation  string  `json:"from_location"`
	ToLocation    string  `json:"to_location"`
	DepartureTime string  `json:"departure_time"`
	Seats         int     `json:"available_seats"`
	PricePerSeat  float64 `json:"price_per_person"`
	DriverName    string  `json:"driver_name"`
	DriverRating  float64 `json:"driver_rating"`
}

// RouteText is the concatenated origin/destination text the ride is
// matched and scored against.
func (r Ride) RouteText() string {
	return r.FromLocation + " " + r.ToLocation
}

// User is a platform user as returned by the backend directory.
type User struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Phone  string  `json:"phone"`
}

// Destination is a popular destination offered on the suggestions path.
type Destination struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlaceCandidate is one suggestion from the place lookup capability.
type PlaceCandidate struct {
	ID          string
	DisplayText string
	Subtitle    string

	// Rank is the capability's own relevance score in [0,1].
	Rank float64

	// DistanceKm is the distance from the query origin, if reported.
	DistanceKm *float64
}
