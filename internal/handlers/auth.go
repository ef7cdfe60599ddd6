package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"CAMPUS_EVENTS_BACK-END/internal/config"
	"CAMPUS_EVENTS_BACK-END/internal/dto"
	"CAMPUS_EVENTS_BACK-END/internal/middleware"
	"CAMPUS_EVENTS_BACK-END/internal/models"
	"CAMPUS_EVENTS_BACK-END/internal/store"
	"CAMPUS_EVENTS_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users      store.UserStore
	jwt        *config.JWTConfig
	bcryptCost int
	logger     *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users store.UserStore, jwt *config.JWTConfig, bcryptCost int, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt, bcryptCost: bcryptCost, logger: logger}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with name, email, password and college id
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.AuthResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or duplicate email"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.CollegeID = strings.TrimSpace(req.CollegeID)
	if req.Name == "" || req.Email == "" || req.Password == "" || req.CollegeID == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "name, email, password and college_id are required")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password", err.Error())
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		CollegeID:    req.CollegeID,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "User already exists", "Email already registered")
			return
		}
		h.logger.WithError(err).Error("Failed to create user")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user", "Server error")
		return
	}

	token, err := middleware.GenerateToken(user.ID, h.jwt)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate token")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", "Server error")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "email and password are required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Unknown email and wrong password answer identically
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
			return
		}
		h.logger.WithError(err).Error("Failed to load user")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load user", "Server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	token, err := middleware.GenerateToken(user.ID, h.jwt)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate token")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", "Server error")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

// Profile returns the current user's profile
// @Summary Get user profile
// @Description Get the current authenticated user's profile information
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse "User profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /api/auth/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	current, ok := utils.UserFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	user, err := h.users.GetByID(r.Context(), current.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No such user")
			return
		}
		h.logger.WithError(err).Error("Failed to load user")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load user", "Server error")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CollegeID: user.CollegeID,
		CreatedAt: utils.FormatTimestamp(user.CreatedAt),
		UpdatedAt: utils.FormatTimestamp(user.UpdatedAt),
	}
}
