package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hail/internal/domain"
	"hail/internal/geo"
	"hail/internal/middleware"
	"hail/internal/service"
)

// dispatchTimeout bounds the background proximity match and fan-out
// that follows ride creation.
const dispatchTimeout = 10 * time.Second

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
	fareService *service.FareService
	matching    *service.MatchingService
	provider    geo.Provider
	notifier    *service.Notifier
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(
	rideService *service.RideService,
	fareService *service.FareService,
	matching *service.MatchingService,
	provider geo.Provider,
	notifier *service.Notifier,
) *RideHandler {
	return &RideHandler{
		rideService: rideService,
		fareService: fareService,
		matching:    matching,
		provider:    provider,
		notifier:    notifier,
	}
}

// CreateRideRequest is the HTTP request body for creating a ride.
type CreateRideRequest struct {
	Pickup      string `json:"pickup"`
	Destination string `json:"destination"`
	RideClass   string `json:"rideClass"`
}

// ConfirmRideRequest is the HTTP request body for confirming a ride.
type ConfirmRideRequest struct {
	RideID string `json:"rideId"`
}

// EndRideRequest is the HTTP request body for ending a ride.
type EndRideRequest struct {
	RideID string `json:"rideId"`
}

// RideResponse is the HTTP representation of a ride. The OTP is only
// present on the creation response: the rider needs it for the
// in-person handoff, nobody else ever sees it.
type RideResponse struct {
	ID          string `json:"id"`
	RiderID     string `json:"rider_id"`
	Pickup      string `json:"pickup"`
	Destination string `json:"destination"`
	RideClass   string `json:"ride_class"`
	Fare        int    `json:"fare"`
	Status      string `json:"status"`
	OTP         string `json:"otp,omitempty"`
	CaptainID   string `json:"captain_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toRideResponse(ride *domain.Ride, includeOTP bool) RideResponse {
	resp := RideResponse{
		ID:          ride.ID,
		RiderID:     ride.RiderID,
		Pickup:      ride.Pickup,
		Destination: ride.Destination,
		RideClass:   string(ride.Class),
		Fare:        ride.Fare,
		Status:      string(ride.Status),
		CaptainID:   ride.CaptainID,
		CreatedAt:   ride.CreatedAt.Format(time.RFC3339),
	}

	if includeOTP {
		resp.OTP = ride.OTP
	}

	return resp
}

// GetFare handles GET /v1/rides/fare?pickup=&destination=
func (h *RideHandler) GetFare(c *gin.Context) {
	pickup := c.Query("pickup")
	destination := c.Query("destination")

	if pickup == "" || destination == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "pickup and destination are required"})
		return
	}

	quote, err := h.fareService.Quote(c.Request.Context(), pickup, destination)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, quote)
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	riderID := c.GetString(middleware.ContextAccountID)

	ride, err := h.rideService.CreateRide(c.Request.Context(), service.CreateRideRequest{
		RiderID:     riderID,
		Pickup:      req.Pickup,
		Destination: req.Destination,
		Class:       domain.RideClass(req.RideClass),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// Fan the new ride out to nearby captains after the creation has
	// committed. Dispatch failures never affect the response.
	go h.dispatchNewRide(ride)

	respondJSON(c, http.StatusCreated, toRideResponse(ride, true))
}

// dispatchNewRide resolves the pickup point, finds online captains in
// the dispatch radius and pushes the new-ride event to each of them.
func (h *RideHandler) dispatchNewRide(ride *domain.Ride) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	coords, err := h.provider.ResolveCoordinates(ctx, ride.Pickup)
	if err != nil {
		log.Printf("[DISPATCH] ride %s: resolve pickup: %v", ride.ID, err)
		return
	}

	candidates, err := h.matching.FindCaptainsNear(ctx, coords.Lat, coords.Lng, service.DefaultDispatchRadiusKm)
	if err != nil {
		log.Printf("[DISPATCH] ride %s: proximity query: %v", ride.ID, err)
		return
	}

	if len(candidates) == 0 {
		log.Printf("[DISPATCH] ride %s: no captains within %.1f km", ride.ID, service.DefaultDispatchRadiusKm)
		return
	}

	captainIDs := make([]string, len(candidates))
	for i, candidate := range candidates {
		captainIDs[i] = candidate.CaptainID
	}

	h.notifier.NotifyNewRide(ride, captainIDs)
}

// ConfirmRide handles POST /v1/rides/confirm
func (h *RideHandler) ConfirmRide(c *gin.Context) {
	var req ConfirmRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	captainID := c.GetString(middleware.ContextAccountID)

	ride, err := h.rideService.ConfirmRide(c.Request.Context(), req.RideID, captainID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.notifier.NotifyRideConfirmed(ride)

	respondJSON(c, http.StatusOK, toRideResponse(ride, false))
}

// StartRide handles POST /v1/rides/start?rideId=&otp=
func (h *RideHandler) StartRide(c *gin.Context) {
	rideID := c.Query("rideId")
	otp := c.Query("otp")

	captainID := c.GetString(middleware.ContextAccountID)

	ride, err := h.rideService.StartRide(c.Request.Context(), rideID, otp, captainID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.notifier.NotifyRideStarted(ride)

	respondJSON(c, http.StatusOK, toRideResponse(ride, false))
}

// EndRide handles POST /v1/rides/end
func (h *RideHandler) EndRide(c *gin.Context) {
	var req EndRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	captainID := c.GetString(middleware.ContextAccountID)

	ride, err := h.rideService.EndRide(c.Request.Context(), req.RideID, captainID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.notifier.NotifyRideEnded(ride)

	respondJSON(c, http.StatusOK, toRideResponse(ride, false))
}

// CancelRide handles POST /v1/rides/:id/cancel
func (h *RideHandler) CancelRide(c *gin.Context) {
	rideID := c.Param("id")
	riderID := c.GetString(middleware.ContextAccountID)

	ride, err := h.rideService.CancelRide(c.Request.Context(), rideID, riderID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.notifier.NotifyRideCancelled(ride)

	respondJSON(c, http.StatusOK, toRideResponse(ride, false))
}

// GetActiveRide handles GET /v1/captains/active-ride
func (h *RideHandler) GetActiveRide(c *gin.Context) {
	captainID := c.GetString(middleware.ContextAccountID)

	ride, err := h.rideService.GetActiveRide(c.Request.Context(), captainID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride, false))
}

// GetRideHistory handles GET /v1/captains/ride-history
func (h *RideHandler) GetRideHistory(c *gin.Context) {
	captainID := c.GetString(middleware.ContextAccountID)

	rides, err := h.rideService.GetRideHistory(c.Request.Context(), captainID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, ride := range rides {
		response = append(response, toRideResponse(ride, false))
	}

	respondJSON(c, http.StatusOK, response)
}
