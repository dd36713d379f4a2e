package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"disaster-watch/internal/domain"
	"disaster-watch/internal/realtime"
	"disaster-watch/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth service.AuthService
	hub  *realtime.Hub

	corsOrigin string
}

func NewHandler(auth service.AuthService, hub *realtime.Hub, corsOrigin string) *Handler {
	return &Handler{
		auth:       auth,
		hub:        hub,
		corsOrigin: corsOrigin,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(h.corsOrigin))

	api := router.Group("/api")
	{
		api.POST("/signup", h.signup)
		api.POST("/login", h.login)
		api.GET("/predictions", h.predictions)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}

	router.GET("/ws", func(ctx *gin.Context) {
		h.hub.Serve(ctx.Writer, ctx.Request)
	})
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Gender   string `json:"gender" binding:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.auth.Register(c.Request.Context(), service.RegisterParams{
		Name:     req.Name,
		Username: req.Username,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Gender:   req.Gender,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account created successfully!"})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginParams{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"user_id":  result.ID,
		"username": result.Username,
		"role":     result.Role,
	})
}

func (h *Handler) predictions(c *gin.Context) {
	// placeholder until the prediction model is wired in
	prediction := domain.Prediction{
		Disaster:    "wildfire",
		Probability: 0.85,
		Time:        time.Now().UTC().Format(time.RFC3339),
	}
	c.JSON(http.StatusOK, gin.H{
		"disaster":    prediction.Disaster,
		"probability": prediction.Probability,
		"time":        prediction.Time,
	})
}

// respondError maps classified service errors to stable statuses and
// messages. Internal error strings never reach the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and email are required"})
	case errors.Is(err, service.ErrDuplicateIdentity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
	case errors.Is(err, service.ErrRoleMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "Selected role does not match user role"})
	case errors.Is(err, service.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
