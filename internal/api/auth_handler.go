package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rcooper/taskflow-api/internal/api/shared"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/platform/metrics"
	"github.com/rcooper/taskflow-api/internal/redact"
	"github.com/rcooper/taskflow-api/internal/service"
	"github.com/rcooper/taskflow-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userService      service.UserService
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	metrics          metrics.Recorder
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	recorder metrics.Recorder,
) *AuthHandler {
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}
	return &AuthHandler{
		userService:      userService,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		metrics:          recorder,
	}
}

// tokenPair issues an access/refresh pair for the user.
func (h *AuthHandler) tokenPair(r *http.Request, user *domain.User) (*AuthResponse, error) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), user.ID)
	if err != nil {
		return nil, err
	}

	roles := make([]string, len(user.Roles))
	for i, role := range user.Roles {
		roles[i] = string(role)
	}

	return &AuthResponse{
		UserID:       user.ID,
		Username:     user.Username,
		Roles:        roles,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegisterUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	resp, err := h.tokenPair(r, user)
	if err != nil {
		slog.Error("failed to generate tokens", "error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, "User registered successfully", resp)
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Same response as a bad password so usernames can't be probed
			h.metrics.RecordLogin(false)
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		HandleServiceError(w, r, err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		h.metrics.RecordLogin(false)
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	resp, err := h.tokenPair(r, user)
	if err != nil {
		slog.Error("failed to generate tokens", "error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token")
		return
	}

	h.metrics.RecordLogin(true)
	shared.RespondWithSuccess(w, r, http.StatusOK, "Login successful", resp)
}

// Refresh handles the /auth/refresh endpoint. A valid refresh token yields a
// fresh access/refresh pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	user, err := h.userService.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		HandleServiceError(w, r, err)
		return
	}

	resp, err := h.tokenPair(r, user)
	if err != nil {
		slog.Error("failed to generate tokens", "error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Token refreshed successfully", resp)
}

// Validate handles the /auth/validate endpoint. Reaching it through the
// authentication middleware proves the token, so it just echoes the principal.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	roles := make([]string, len(principal.Roles))
	for i, role := range principal.Roles {
		roles[i] = string(role)
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Token is valid", map[string]interface{}{
		"user_id":  principal.ID,
		"username": principal.Username,
		"roles":    roles,
	})
}

// Logout handles the /auth/logout endpoint. Tokens are stateless, so logout
// is an acknowledgement; clients discard their tokens.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithSuccess(w, r, http.StatusOK, "Logged out successfully", nil)
}
