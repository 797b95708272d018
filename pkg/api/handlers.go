package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	polyline "github.com/twpayne/go-polyline"

	"arli/pkg/routing"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	router routing.Router
	stats  StatsResponse
}

// NewHandlers creates handlers with the given router.
func NewHandlers(router routing.Router, stats StatsResponse) *Handlers {
	return &Handlers{
		router: router,
		stats:  stats,
	}
}

// HandleRoute handles GET /route/v1/driving/{lon1},{lat1};{lon2},{lat2}.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	waypoints, err := parseWaypoints(r.PathValue("waypoints"))
	if err != nil {
		writeOsrmError(w, http.StatusBadRequest, "InvalidInput", err.Error())
		return
	}

	result, err := h.router.Route(r.Context(), waypoints[0], waypoints[1])
	if err != nil {
		if errors.Is(err, routing.ErrNoMatch) || errors.Is(err, routing.ErrNoRoute) {
			writeOsrmError(w, http.StatusNotFound, "NoRoute", "no route found between the given waypoints")
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeOsrmError(w, http.StatusServiceUnavailable, "RequestTimeout", "request cancelled or timed out")
			return
		}
		log.Printf("route error: %v", err)
		writeOsrmError(w, http.StatusInternalServerError, "InternalError", "internal error")
		return
	}

	coords := make([][]float64, len(result.Geometry))
	for i, p := range result.Geometry {
		coords[i] = []float64{p.Lat, p.Lng}
	}

	resp := OsrmRouteResponse{
		Code: "Ok",
		Routes: []OsrmRoute{{
			Distance: result.DistanceMeters,
			Duration: result.DurationSeconds,
			Geometry: string(polyline.EncodeCoords(coords)),
			Legs: []OsrmLeg{{
				Weight:   result.DurationSeconds,
				Distance: result.DistanceMeters,
				Duration: result.DurationSeconds,
				Summary:  "",
				Steps:    []string{},
			}},
		}},
		Waypoints: []OsrmWaypoint{
			{Distance: result.StartSnap.DistanceMeters, Location: []float64{result.StartSnap.Location.Lng, result.StartSnap.Location.Lat}},
			{Distance: result.EndSnap.DistanceMeters, Location: []float64{result.EndSnap.Location.Lng, result.EndSnap.Location.Lat}},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

func writeOsrmError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(OsrmErrorResponse{Code: code, Message: message})
}
