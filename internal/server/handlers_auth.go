package server

import (
	"net/http"

	"github.com/desertthunder/tdx/internal/services"
	"github.com/desertthunder/tdx/internal/shared"
)

type signUpRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (a *API) handleSignUp(w http.ResponseWriter, req *http.Request) {
	var body signUpRequest
	if !decodeJSON(w, req, &body) {
		return
	}

	if body.Password != body.ConfirmPassword {
		writeError(w, shared.ErrPasswordMismatch)
		return
	}

	session, err := a.identity.SignUp(req.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	// The profile mirror is written after the identity record. A failure here
	// leaves an account without a profile document; not rolled back.
	if err := a.users.Create(req.Context(), session.Principal.ID, body.Name, body.Email); err != nil {
		a.logger.Error("failed to write profile after signup", "uid", session.Principal.ID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (a *API) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body loginRequest
	if !decodeJSON(w, req, &body) {
		return
	}

	session, err := a.identity.SignIn(req.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (a *API) handleLogout(w http.ResponseWriter, req *http.Request) {
	token := bearerToken(req)
	if token == "" {
		writeErrorMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := a.identity.SignOut(token); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleMe(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFrom(req.Context())

	profile, err := a.users.Get(req.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"principal": principal,
		"profile":   profile,
	})
}

func (a *API) handleUpdateMe(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFrom(req.Context())

	var body updateProfileRequest
	if !decodeJSON(w, req, &body) {
		return
	}

	params := services.UpdateUserParams{Name: body.Name, Email: body.Email}
	if err := a.users.Update(req.Context(), principal.ID, params); err != nil {
		writeError(w, err)
		return
	}

	profile, err := a.users.Get(req.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
