// Package controllers translates HTTP requests into service calls and
// service results into JSON responses.
package controllers

import (
	"errors"
	"net/http"

	"github.com/soutoura/soutoura/app/services"
	"github.com/soutoura/soutoura/pkg/bind"
	"github.com/soutoura/soutoura/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks the owner credentials. No session or token is issued: the
// dashboard only needs a yes/no gate.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.service.Login(services.Credentials(body)); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(w, "Seul le propriétaire a accès à cette section")
			return
		}
		response.ServerError(w)
		return
	}

	response.Success(w, map[string]interface{}{
		"success": true,
		"message": "Connexion réussie",
		"user":    map[string]string{"email": body.Email},
	})
}
