package handlers

import (
	"fmt"
	"net/http"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"feednbounce-backend/internal/apperr"
	"feednbounce-backend/internal/identity"
	"feednbounce-backend/internal/models"
	"feednbounce-backend/internal/store"
)

type AuthHandler struct {
	store        store.Store
	jwtSecret    string
	resendAPIKey string
	fromEmail    string
	log          zerolog.Logger
}

func NewAuthHandler(st store.Store, jwtSecret, resendAPIKey, fromEmail string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		store:        st,
		jwtSecret:    jwtSecret,
		resendAPIKey: resendAPIKey,
		fromEmail:    fromEmail,
		log:          log,
	}
}

// --- Request / Response types ---

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

// --- POST /api/auth/register ---

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.log, err)
		return
	}

	existing, err := h.store.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeAppError(w, h.log, err)
		return
	}
	if existing != nil {
		writeAppError(w, h.log, apperr.New(apperr.CodeDuplicateEmail, "User already exists"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeAppError(w, h.log, err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		ExternalUserID: identity.NewExternalUserID(),
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   string(hash),
		Role:           role,
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		writeAppError(w, h.log, err)
		return
	}

	token, err := identity.IssueToken(h.jwtSecret, user)
	if err != nil {
		writeAppError(w, h.log, err)
		return
	}

	// Welcome email is best-effort; registration already succeeded.
	go h.sendWelcomeEmail(user.Email, user.Name)

	writeJSON(w, http.StatusCreated, AuthResponse{
		ID:     user.ID.Hex(),
		UserID: user.ExternalUserID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Token:  token,
	})
}

// --- POST /api/auth/login ---

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.log, err)
		return
	}

	user, err := h.store.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeAppError(w, h.log, err)
		return
	}
	// Same answer for unknown email and wrong password.
	if user == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
		return
	}

	token, err := identity.IssueToken(h.jwtSecret, user)
	if err != nil {
		writeAppError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		ID:     user.ID.Hex(),
		UserID: user.ExternalUserID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Token:  token,
	})
}

// --- Helpers ---

func (h *AuthHandler) sendWelcomeEmail(to, name string) {
	if h.resendAPIKey == "" {
		h.log.Debug().Str("to", to).Msg("RESEND_API_KEY not set, skipping welcome email")
		return
	}

	client := resend.NewClient(h.resendAPIKey)
	params := &resend.SendEmailRequest{
		From:    h.fromEmail,
		To:      []string{to},
		Subject: "Welcome to FeedNBounce",
		Html: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Welcome, %s!</h2>
				<p>Your FeedNBounce account is ready. Log in any time to share
				feedback on our products and services and to review your
				submission history.</p>
				<p style="color: #aaa; font-size: 12px;">
					If you didn't create this account, you can safely ignore this email.
				</p>
			</div>
		`, name),
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		h.log.Error().Err(err).Str("to", to).Msg("sending welcome email")
		return
	}
	h.log.Info().Str("to", to).Str("email_id", sent.Id).Msg("welcome email sent")
}
