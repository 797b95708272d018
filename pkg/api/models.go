package api

// OsrmRouteResponse is the JSON body returned by the route endpoint,
// shaped to match the OSRM v1 driving-route response so existing OSRM
// clients (map frontends, routing-profile tooling) work unmodified.
type OsrmRouteResponse struct {
	Code      string         `json:"code"`
	Routes    []OsrmRoute    `json:"routes"`
	Waypoints []OsrmWaypoint `json:"waypoints"`
}

// OsrmRoute is one candidate route. This service always returns exactly
// one.
type OsrmRoute struct {
	Distance float64   `json:"distance"`
	Duration float64   `json:"duration"`
	Geometry string    `json:"geometry"`
	Legs     []OsrmLeg `json:"legs"`
}

// OsrmLeg is the single leg between the two requested waypoints; this
// service never splits a route into multiple legs.
type OsrmLeg struct {
	Weight   float64  `json:"weight"`
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
	Summary  string   `json:"summary"`
	Steps    []string `json:"steps"`
}

// OsrmWaypoint describes where a requested waypoint ended up after
// snapping to the road network.
type OsrmWaypoint struct {
	Distance float64   `json:"distance"`
	Location []float64 `json:"location"` // [lon, lat]
}

// OsrmErrorResponse is returned for a malformed request or an
// unroutable pair of waypoints.
type OsrmErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the JSON response for GET /stats.
type StatsResponse struct {
	NumNodes uint32 `json:"num_nodes"`
	NumEdges int    `json:"num_edges"`
}
