package main

import (
	"net/http"

	"github.com/sushihentaime/pressroom/internal/userservice"
)

func (app *application) checkPermissionHandler(w http.ResponseWriter, r *http.Request) {
	claims := app.getClaimsContext(r)
	if claims == nil {
		app.authenticationRequiredResponse(w, r)
		return
	}

	env := envelope{
		"username":             claims.Subject,
		"role":                 claims.Role,
		"isAdmin":              claims.IsAdmin(),
		"isAuthor":             claims.IsAuthor(),
		"canCreateArticles":    claims.Role.Implies(userservice.RoleUser),
		"canEditAllArticles":   claims.IsAuthor(),
		"canDeleteAllArticles": claims.IsAdmin(),
		"canManageUsers":       claims.IsAdmin(),
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) userInfoHandler(w http.ResponseWriter, r *http.Request) {
	claims := app.getClaimsContext(r)
	if claims == nil {
		app.authenticationRequiredResponse(w, r)
		return
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"username": claims.Subject, "role": claims.Role}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
