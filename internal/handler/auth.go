package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hail/internal/domain"
	"hail/internal/service"
)

// AuthHandler handles account registration and login.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterUserRequest is the HTTP request body for rider registration.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterCaptainRequest is the HTTP request body for captain registration.
type RegisterCaptainRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Password     string `json:"password" binding:"required,min=6"`
	VehiclePlate string `json:"vehicle_plate" binding:"required"`
	VehicleClass string `json:"vehicle_class" binding:"required"`
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AccountResponse is the HTTP response for registration and login.
type AccountResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Token string `json:"token"`
}

// RegisterUser handles POST /v1/users/register
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, token, err := h.authService.RegisterUser(c.Request.Context(), service.RegisterUserRequest{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, AccountResponse{
		ID:    user.ID,
		Name:  user.Name,
		Phone: user.Phone,
		Token: token,
	})
}

// LoginUser handles POST /v1/users/login
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, token, err := h.authService.LoginUser(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, AccountResponse{
		ID:    user.ID,
		Name:  user.Name,
		Phone: user.Phone,
		Token: token,
	})
}

// RegisterCaptain handles POST /v1/captains/register
func (h *AuthHandler) RegisterCaptain(c *gin.Context) {
	var req RegisterCaptainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	class := domain.VehicleClass(req.VehicleClass)
	if class != domain.VehicleClassSolo && class != domain.VehicleClassShare {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid vehicle class"})
		return
	}

	captain, token, err := h.authService.RegisterCaptain(c.Request.Context(), service.RegisterCaptainRequest{
		Name:         req.Name,
		Phone:        req.Phone,
		Password:     req.Password,
		VehiclePlate: req.VehiclePlate,
		VehicleClass: class,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, AccountResponse{
		ID:    captain.ID,
		Name:  captain.Name,
		Phone: captain.Phone,
		Token: token,
	})
}

// LoginCaptain handles POST /v1/captains/login
func (h *AuthHandler) LoginCaptain(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	captain, token, err := h.authService.LoginCaptain(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, AccountResponse{
		ID:    captain.ID,
		Name:  captain.Name,
		Phone: captain.Phone,
		Token: token,
	})
}
