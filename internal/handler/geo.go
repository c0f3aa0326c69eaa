package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hail/internal/geo"
)

// minSuggestionInput is the shortest input the suggestions endpoint accepts.
const minSuggestionInput = 3

// GeoHandler handles HTTP requests delegated to the geocoding provider.
type GeoHandler struct {
	provider geo.Provider
}

// NewGeoHandler creates a new GeoHandler.
func NewGeoHandler(provider geo.Provider) *GeoHandler {
	return &GeoHandler{provider: provider}
}

// GetCoordinates handles GET /v1/geo/coordinates?address=
func (h *GeoHandler) GetCoordinates(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "address is required"})
		return
	}

	coords, err := h.provider.ResolveCoordinates(c.Request.Context(), address)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, coords)
}

// GetDistanceTime handles GET /v1/geo/distance-time?origin=&destination=
func (h *GeoHandler) GetDistanceTime(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")

	if origin == "" || destination == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "origin and destination are required"})
		return
	}

	estimate, err := h.provider.EstimateTrip(c.Request.Context(), origin, destination)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, estimate)
}

// GetSuggestions handles GET /v1/geo/suggestions?input=
func (h *GeoHandler) GetSuggestions(c *gin.Context) {
	input := c.Query("input")
	if len(input) < minSuggestionInput {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "input must be at least 3 characters"})
		return
	}

	suggestions, err := h.provider.Suggestions(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, suggestions)
}
