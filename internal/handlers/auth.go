package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ukydev/garage/internal/apperror"
	"github.com/ukydev/garage/internal/db"
	"github.com/ukydev/garage/internal/logging"
	"github.com/ukydev/garage/internal/middleware"
	"github.com/ukydev/garage/internal/models"
)

// Authenticator issues and checks credentials for staff accounts.
type Authenticator interface {
	HashPassword(password string) (string, error)
	CheckPassword(password, hash string) bool
	GenerateToken(user *models.User) (string, error)
	GenerateRefreshToken() (string, error)
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService    Authenticator
	userCollection db.UserCollection
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService Authenticator, userCollection db.UserCollection) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		userCollection: userCollection,
	}
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq models.LoginRequest
	if err := decodeJSON(w, r, &loginReq); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validate(loginReq); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.userCollection.FindUserByUsername(r.Context(), loginReq.Username)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			writeError(w, r, apperror.Internal("find user", err))
			return
		}
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.IsActive {
		writeMessage(w, http.StatusUnauthorized, "Account is deactivated")
		return
	}
	if !h.authService.CheckPassword(loginReq.Password, user.PasswordHash) {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	response, err := h.issue(user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.userCollection.UpdateLastLogin(r.Context(), user.ID.Hex()); err != nil {
		logging.FromContext(r.Context()).WithError(err).WithField("user", user.Username).Warn("failed to update last login")
	}

	writeJSON(w, http.StatusOK, response)
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq models.RegisterRequest
	if err := decodeJSON(w, r, &registerReq); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validate(registerReq); err != nil {
		writeError(w, r, err)
		return
	}
	if registerReq.Role == "" {
		registerReq.Role = models.RoleViewer
	}

	if err := h.checkFree(r.Context(), registerReq.Username, registerReq.Email, ""); err != nil {
		writeError(w, r, err)
		return
	}

	passwordHash, err := h.authService.HashPassword(registerReq.Password)
	if err != nil {
		writeError(w, r, apperror.Internal("hash password", err))
		return
	}

	user := &models.User{
		Username:     registerReq.Username,
		Email:        registerReq.Email,
		PasswordHash: passwordHash,
		Role:         registerReq.Role,
		FirstName:    registerReq.FirstName,
		LastName:     registerReq.LastName,
	}
	if err := h.userCollection.InsertUser(r.Context(), user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			writeError(w, r, apperror.Conflict("Username or email already exists"))
			return
		}
		writeError(w, r, apperror.Internal("insert user", err))
		return
	}

	response, err := h.issue(user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).WithField("user", user.Username).Info("user registered")
	writeJSON(w, http.StatusCreated, response)
}

// GetProfile returns the current user's profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile updates the current user's profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var updateReq models.UpdateProfileRequest
	if err := decodeJSON(w, r, &updateReq); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validate(updateReq); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if updateReq.FirstName != nil {
		user.FirstName = *updateReq.FirstName
	}
	if updateReq.LastName != nil {
		user.LastName = *updateReq.LastName
	}
	if updateReq.Email != nil && *updateReq.Email != user.Email {
		if err := h.checkFree(r.Context(), "", *updateReq.Email, user.ID.Hex()); err != nil {
			writeError(w, r, err)
			return
		}
		user.Email = *updateReq.Email
	}

	if err := h.userCollection.UpdateUser(r.Context(), user); err != nil {
		writeError(w, r, userErr(err))
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ChangePassword changes the current user's password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var passwordReq models.ChangePasswordRequest
	if err := decodeJSON(w, r, &passwordReq); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validate(passwordReq); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !h.authService.CheckPassword(passwordReq.CurrentPassword, user.PasswordHash) {
		writeMessage(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	newPasswordHash, err := h.authService.HashPassword(passwordReq.NewPassword)
	if err != nil {
		writeError(w, r, apperror.Internal("hash password", err))
		return
	}
	user.PasswordHash = newPasswordHash
	if err := h.userCollection.UpdateUser(r.Context(), user); err != nil {
		writeError(w, r, userErr(err))
		return
	}
	writeMessage(w, http.StatusOK, "Password changed successfully")
}

func (h *AuthHandler) issue(user *models.User) (*models.LoginResponse, error) {
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		return nil, apperror.Internal("generate token", err)
	}
	refreshToken, err := h.authService.GenerateRefreshToken()
	if err != nil {
		return nil, apperror.Internal("generate refresh token", err)
	}
	return &models.LoginResponse{Token: token, RefreshToken: refreshToken, User: *user}, nil
}

func (h *AuthHandler) currentUser(r *http.Request) (*models.User, error) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		return nil, apperror.Internal("user context not found", nil)
	}
	user, err := h.userCollection.FindUserByID(r.Context(), claims.UserID)
	if err != nil {
		return nil, userErr(err)
	}
	return user, nil
}

// checkFree reports a conflict when username or email belongs to an account
// other than self. Empty values are not checked.
func (h *AuthHandler) checkFree(ctx context.Context, username, email, self string) error {
	if username != "" {
		existing, err := h.userCollection.FindUserByUsername(ctx, username)
		if err == nil && existing.ID.Hex() != self {
			return apperror.Conflict("Username already exists")
		}
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			return apperror.Internal("find user", err)
		}
	}
	if email != "" {
		existing, err := h.userCollection.FindUserByEmail(ctx, email)
		if err == nil && existing.ID.Hex() != self {
			return apperror.Conflict("Email already exists")
		}
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			return apperror.Internal("find user", err)
		}
	}
	return nil
}

func userErr(err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return apperror.NotFound("User not found")
	case errors.Is(err, db.ErrDuplicate):
		return apperror.Conflict("Email already exists")
	}
	return apperror.Internal("user store", err)
}
