package main

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/profitrider/backend/internal/database"
	"github.com/profitrider/backend/internal/model"
	"github.com/profitrider/backend/internal/request"
	"github.com/profitrider/backend/internal/response"
	"github.com/profitrider/backend/internal/validator"
)

type requestRegister struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input requestRegister
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	var v validator.Validator
	v.CheckField(validator.NotBlank(input.Username), "username", "cannot be blank")
	v.CheckField(validator.MaxRunes(input.Username, 150), "username", "too long")
	v.CheckField(validator.IsEmail(input.Email), "email", "must be a valid email address")
	v.CheckField(validator.MinRunes(input.Password, 8), "password", "must be at least 8 characters")

	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	dao := database.NewUserDAO(app.requestLogger(r), app.db)

	userID, err := dao.Register(ctx, database.RegisterUserDTO{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, model.ErrExists) {
			app.errorMessage(w, r, http.StatusConflict, err.Error(), nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	token, err := app.tokens.Issue(userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	user, err := dao.Get(ctx, userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	err = response.JSON(w, http.StatusCreated, response.JSONObject{
		"token": token,
		"user":  user,
	})
	if err != nil {
		app.serverError(w, r, err)
	}
}

type requestLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input requestLogin
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	dao := database.NewUserDAO(app.requestLogger(r), app.db)

	user, err := dao.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			app.errorMessage(w, r, http.StatusUnauthorized, "wrong username or password", nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		app.errorMessage(w, r, http.StatusUnauthorized, "wrong username or password", nil)
		return
	}

	token, err := app.tokens.Issue(user.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	err = response.JSON(w, http.StatusOK, response.JSONObject{
		"token": token,
		"user":  user,
	})
	if err != nil {
		app.serverError(w, r, err)
	}
}
