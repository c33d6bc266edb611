package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	limitmem "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
	"github.com/Manav-gyani/Bank-Management-System/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// defaultLoginRateLimit caps login attempts per IP when RATE_LIMIT is unset
// or malformed.
const defaultLoginRateLimit = "5-M"

// registerAuthRoutes sets up the public authentication routes. Login is
// rate-limited per IP using the configured spec.
func registerAuthRoutes(rg *gin.Engine, authService portssvc.AuthSvcFacade, rateLimitSpec string) {
	h := newAuthHandler(authService)

	rate, err := limiter.NewRateFromFormatted(rateLimitSpec)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted(defaultLoginRateLimit)
	}
	ipLimiter := limiter.New(limitmem.NewStore(), rate)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
		auth.POST("/register", h.register)
	}
}

// register godoc
// @Summary Register a new customer
// @Description Creates a customer record together with its login credentials.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 409 {object} ErrorResponse "Username or email already taken"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	customer, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Registration conflict", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to register", slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: "Failed to register"})
		return
	}

	logger.Info("Customer registered", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// login godoc
// @Summary Customer login
// @Description Authenticates a login and returns a JWT access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 401 {object} ErrorResponse "Invalid username or password"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Warn("Login rejected", slog.String("username", req.Username))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		logger.Error("Failed to login", slog.String("error", err.Error()))
		c.JSON(apperrors.StatusCode(err), ErrorResponse{Error: "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
