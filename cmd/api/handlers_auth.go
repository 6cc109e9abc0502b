package main

import (
	"errors"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"medicart/internal/models"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"required,min=7,max=15,numeric"`
	Address  string `json:"address"`
}

func (app *application) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), app.cfg.BcryptCost)
	if err != nil {
		app.serverError(w, err)
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
		Phone:        req.Phone,
		Address:      req.Address,
		CreatedAt:    time.Now(),
	}
	if err := app.store.CreateUser(r.Context(), user); err != nil {
		app.businessError(w, err)
		return
	}

	app.session.Put(r.Context(), "authenticatedUserID", user.ID.Hex())
	app.session.Put(r.Context(), "userRole", string(user.Role))

	app.writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	user, err := app.store.UserByEmail(r.Context(), req.Email)
	if errors.Is(err, models.ErrUserNotFound) {
		app.clientError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
		return
	}
	if err != nil {
		app.serverError(w, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		app.clientError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
		return
	}

	app.session.Put(r.Context(), "authenticatedUserID", user.ID.Hex())
	app.session.Put(r.Context(), "userRole", string(user.Role))

	app.writeJSON(w, http.StatusOK, user)
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	app.session.Remove(r.Context(), "authenticatedUserID")
	if err := app.session.Destroy(r.Context()); err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (app *application) me(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}
	user, err := app.store.UserByID(r.Context(), userID)
	if err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required,min=7,max=15,numeric"`
	Address string `json:"address"`
}

func (app *application) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}

	var req updateProfileRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	if err := app.store.UpdateUserProfile(r.Context(), userID, req.Name, req.Phone, req.Address); err != nil {
		app.businessError(w, err)
		return
	}
	user, err := app.store.UserByID(r.Context(), userID)
	if err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func (app *application) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}

	var req changePasswordRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	user, err := app.store.UserByID(r.Context(), userID)
	if err != nil {
		app.businessError(w, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		app.clientError(w, http.StatusBadRequest, models.ErrInvalidCredentials.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), app.cfg.BcryptCost)
	if err != nil {
		app.serverError(w, err)
		return
	}
	if err := app.store.UpdateUserPassword(r.Context(), userID, string(hashed)); err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
