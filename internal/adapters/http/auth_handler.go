package http

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"recipeauth/internal/config"
	"recipeauth/internal/domain"
)

type AuthHandler struct {
	svc domain.AuthService
	cfg *config.Config
}

func NewAuthHandler(svc domain.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		cfg: cfg,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := ValidateStruct(&req); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.svc.Signup(r.Context(), req); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			writeMessage(w, http.StatusConflict, "User already exists")
			return
		}

		writeMessage(w, http.StatusInternalServerError, "Failed to sign up")
		return
	}

	writeMessage(w, http.StatusOK, "User created. Verification code sent to email.")
}

func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := ValidateStruct(&req); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	err := h.svc.VerifyCode(r.Context(), req, clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateLimited):
			writeMessage(w, http.StatusTooManyRequests, "Too many attempts. Try again later.")
		case errors.Is(err, domain.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "Invalid email or code")
		case errors.Is(err, domain.ErrIncorrectCode):
			writeMessage(w, http.StatusBadRequest, "Incorrect code")
		case errors.Is(err, domain.ErrCodeExpired):
			writeMessage(w, http.StatusBadRequest, "Code expired")
		default:
			writeMessage(w, http.StatusInternalServerError, "Failed to verify code")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Email successfully verified")
}

func (h *AuthHandler) ResendCode(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.ResendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := ValidateStruct(&req); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	err := h.svc.ResendCode(r.Context(), req, clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateLimited):
			writeMessage(w, http.StatusTooManyRequests, "Too many attempts. Try again later.")
		case errors.Is(err, domain.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrAlreadyVerified):
			writeMessage(w, http.StatusBadRequest, "User already verified")
		default:
			writeMessage(w, http.StatusInternalServerError, "Failed to resend code")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Code resent successfully")
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := ValidateStruct(&req); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	res, err := h.svc.SignIn(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// Unknown email and wrong password answer identically.
			writeMessage(w, http.StatusUnauthorized, "Invalid credential/user not exists")
			return
		}

		writeMessage(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    res.AccessToken,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.JWTExpiry),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	writeMessage(w, http.StatusOK, "User signed in successfully")
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "csrf_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: false,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	writeMessage(w, http.StatusOK, "User signed out successfully")
}

func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetUser(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		writeMessage(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
