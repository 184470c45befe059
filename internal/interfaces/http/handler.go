package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"project_karcis/internal/entities"
	"project_karcis/internal/infrastructure"
	"project_karcis/internal/interfaces"
	"project_karcis/internal/usecases"
)

type Handler struct {
	auth      *usecases.AuthUsecase
	users     interfaces.UserStore
	balances  interfaces.BalanceStore
	amenities interfaces.AmenityStore
	log       zerolog.Logger
}

func NewHandler(auth *usecases.AuthUsecase, users interfaces.UserStore,
	balances interfaces.BalanceStore, amenities interfaces.AmenityStore,
	log zerolog.Logger) *Handler {
	return &Handler{
		auth:      auth,
		users:     users,
		balances:  balances,
		amenities: amenities,
		log:       log,
	}
}

func SetupRoutes(r *gin.Engine, h *Handler, m *Middleware, log zerolog.Logger) {
	// Apply Security Middleware
	r.Use(SecurityHeaders())
	r.Use(RequestSizeLimiter(10 << 20)) // 10MB max request size
	r.Use(m.CORSMiddleware())
	r.Use(RequestID())
	r.Use(RequestLogger(log))

	v1 := r.Group("/api/v1")

	// Public Auth Routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/otp-check", h.CheckOTP)
		auth.POST("/forgot-password/reset", h.ResetPassword)
		auth.GET("/logout", m.AuthRequired(entities.RoleAdmin, entities.RoleUser), h.Logout)
	}

	// User Routes
	user := v1.Group("/user")
	{
		user.GET("/:id", m.AuthRequired(entities.RoleAdmin), h.GetUser)
		user.PATCH("/profile",
			m.AuthRequired(entities.RoleAdmin, entities.RoleUser),
			m.RateLimitPerUser(5, 10),
			h.UpdateProfile)
		user.DELETE("/:id", m.AuthRequired(entities.RoleAdmin), h.DeleteUser)
	}

	// Amenity Routes: public read, admin-only write
	amenity := v1.Group("/amenity")
	{
		amenity.GET("", h.GetAllAmenities)
		amenity.GET("/:id", h.GetAmenity)
		amenity.POST("", m.AuthRequired(entities.RoleAdmin), h.CreateAmenity)
		amenity.PATCH("", m.AuthRequired(entities.RoleAdmin), h.UpdateAmenity)
		amenity.DELETE("/:id", m.AuthRequired(entities.RoleAdmin), h.DeleteAmenity)
	}

	// Balance Routes
	balance := v1.Group("/balance", m.AuthRequired(entities.RoleAdmin, entities.RoleUser))
	{
		balance.GET("/:user_id", h.GetBalance)
		balance.GET("/history/:user_id", h.GetBalanceHistories)
		balance.PUT("/:id", h.UpdateBalance)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", CodeValidation)
		return
	}
	if errs := ValidateRegister(req); len(errs) > 0 {
		respondError(c, http.StatusBadRequest, "Validation failed: "+strings.Join(errs, ", "), CodeValidation)
		return
	}

	user := entities.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Phone:     req.Phone,
		Title:     req.Title,
		Image:     req.Image,
	}
	created, token, err := h.auth.Register(c.Request.Context(), user, req.Password)
	if err != nil {
		if errors.Is(err, usecases.ErrUserExists) {
			respondError(c, http.StatusConflict, "User with this username or email already exists", CodeConflict)
			return
		}
		h.log.Error().Err(err).Msg("register failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}

	respondOK(c, http.StatusCreated, "Profile created successfully.", gin.H{
		"profile": created.Profile(),
		"token":   token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", CodeValidation)
		return
	}
	if errs := ValidateLogin(req); len(errs) > 0 {
		respondError(c, http.StatusBadRequest, "Validation failed: "+strings.Join(errs, ", "), CodeValidation)
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecases.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials", CodeCredentials)
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}

	respondOK(c, http.StatusOK, "Login success.", gin.H{
		"profile": user.Profile(),
		"token":   token,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	token, ok := CurrentToken(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No valid token found", CodeUnauthorized)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		h.log.Error().Err(err).Msg("logout failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}
	respondOK(c, http.StatusOK, "Token revoked successfully.", gin.H{
		"message": "Logged out successfully.",
	})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || !ValidEmail(req.Email) {
		respondError(c, http.StatusBadRequest, "A valid email is required", CodeValidation)
		return
	}

	err := h.auth.ForgotPassword(c.Request.Context(), req.Email, infrastructure.ForgotPasswordTemplate)
	if err != nil {
		if errors.Is(err, usecases.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found", CodeNotFound)
			return
		}
		h.log.Error().Err(err).Msg("forgot password failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}
	respondOK(c, http.StatusOK, "Email sent successfully.", nil)
}

func (h *Handler) CheckOTP(c *gin.Context) {
	var req CheckOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		respondError(c, http.StatusBadRequest, "Code is required", CodeValidation)
		return
	}

	if err := h.auth.CheckOTP(c.Request.Context(), req.Code); err != nil {
		if errors.Is(err, usecases.ErrOTPInvalid) {
			respondError(c, http.StatusBadRequest, "OTP code is invalid, expired, or already used", CodeValidation)
			return
		}
		h.log.Error().Err(err).Msg("otp check failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}
	respondOK(c, http.StatusOK, "OTP code is valid.", nil)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", CodeValidation)
		return
	}
	if errs := ValidateResetPassword(req); len(errs) > 0 {
		respondError(c, http.StatusBadRequest, "Validation failed: "+strings.Join(errs, ", "), CodeValidation)
		return
	}

	err := h.auth.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecases.ErrOTPInvalid):
			respondError(c, http.StatusBadRequest, "OTP code is invalid, expired, or already used", CodeValidation)
		case errors.Is(err, usecases.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "User not found", CodeNotFound)
		default:
			h.log.Error().Err(err).Msg("reset password failed")
			respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		}
		return
	}
	respondOK(c, http.StatusOK, "Password reset successfully.", nil)
}
