package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/user"
	apperrors "github.com/Akshan03/Personal-Finance-Agent/internal/shared/errors"
)

// UserService defines the user operations needed by AuthHandler
type UserService interface {
	Register(ctx context.Context, email, password, fullName string) (*user.User, error)
	Login(ctx context.Context, email, password string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// TokenIssuer issues access tokens
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
}

// AuthHandler handles authentication and account HTTP requests
type AuthHandler struct {
	users  UserService
	tokens TokenIssuer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users UserService, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string    `json:"access_token"`
	TokenType string    `json:"token_type"`
	User      *UserInfo `json:"user"`
}

// UserInfo represents user information without sensitive data
type UserInfo struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func userInfo(u *user.User) *UserInfo {
	return &UserInfo{
		ID:          u.ID.String(),
		Email:       u.Email,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	if req.Email == "" {
		respondAppError(w, apperrors.Validation("email is required"))
		return
	}
	if req.Password == "" {
		respondAppError(w, apperrors.Validation("password is required"))
		return
	}

	registered, err := h.users.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		respondAppError(w, err)
		return
	}

	h.respondWithToken(w, registered, http.StatusCreated)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	if req.Email == "" || req.Password == "" {
		respondAppError(w, apperrors.Validation("email and password are required"))
		return
	}

	authenticated, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAppError(w, err)
		return
	}

	h.respondWithToken(w, authenticated, http.StatusOK)
}

// Me handles GET /users/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, userInfo(u), http.StatusOK)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, u *user.User, status int) {
	token, err := h.tokens.GenerateToken(u.ID, u.Email)
	if err != nil {
		respondAppError(w, apperrors.Internal("failed to generate token", err))
		return
	}

	respondJSON(w, AuthResponse{
		Token:     token,
		TokenType: "bearer",
		User:      userInfo(u),
	}, status)
}
