package handlers

import (
	"errors"
	"net/http"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/dto"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service user.Service
}

func NewAuthHandler(service user.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Register(c.Request.Context(), user.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, user.ErrDuplicate):
			statusCode = http.StatusConflict
		case errors.Is(err, user.ErrInvalidInput),
			errors.Is(err, user.ErrInvalidEmail),
			errors.Is(err, user.ErrWeakPassword):
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": UserToResponse(created)})
}

// Login authenticates a user and issues a JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	found, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.LoginResponse{
		Token: token,
		User:  UserToResponse(found),
	}})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	found, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": UserToResponse(found)})
}

// UpdatePreferences toggles the user's email notification preference
func (h *AuthHandler) UpdatePreferences(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.SetEmailNotifications(c.Request.Context(), userID, req.EmailNotifications)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": UserToResponse(updated)})
}
