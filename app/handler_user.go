package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/sushihentaime/pressroom/internal/articleservice"
	"github.com/sushihentaime/pressroom/internal/userservice"
)

// userView is a single user together with the articles they wrote.
type userView struct {
	*userservice.User
	Articles []*articleservice.Article `json:"articles"`
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input userservice.RegisterRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	token, err := app.userService.RegisterUser(r.Context(), input)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, token, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input userservice.LoginRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	token, err := app.userService.LoginUser(r.Context(), input.Username, input.Password)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, token, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := app.getClaimsContext(r)
	if claims == nil {
		app.authenticationRequiredResponse(w, r)
		return
	}

	app.userService.LogoutUser(claims)

	err := app.writeJSON(w, http.StatusOK, envelope{"message": "user logged out"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.userService.GetUsers(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, users, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// getUserHandler serves both GET /users/me and GET /users/:id.
func (app *application) getUserHandler(w http.ResponseWriter, r *http.Request) {
	var user *userservice.User

	if httprouter.ParamsFromContext(r.Context()).ByName("id") == "me" {
		user = app.getUserContext(r)
	} else {
		id, err := app.readIDParam(r, "id")
		if err != nil {
			app.badRequestErrorResponse(w, r, err)
			return
		}

		user, err = app.userService.GetUserByID(r.Context(), id)
		if err != nil {
			app.serviceErrorResponse(w, r, err)
			return
		}
	}

	app.writeUserView(w, r, user)
}

func (app *application) writeUserView(w http.ResponseWriter, r *http.Request, user *userservice.User) {
	articles, err := app.articleService.GetArticlesByAuthorID(r.Context(), user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, userView{User: user, Articles: articles}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// readTargetUser reads the :id parameter and checks the caller may modify that user.
// Only admins may modify other users.
func (app *application) readTargetUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return uuid.Nil, false
	}

	caller := app.getUserContext(r)
	if caller.ID != id && !caller.IsAdmin() {
		app.forbiddenResponse(w, r)
		return uuid.Nil, false
	}

	return id, true
}

// roleChangeAllowed reports whether the caller may set the target's role to role.
func (app *application) roleChangeAllowed(r *http.Request, id uuid.UUID, role userservice.Role) (bool, error) {
	caller := app.getUserContext(r)
	if caller.IsAdmin() {
		return true, nil
	}

	target, err := app.userService.GetUserByID(r.Context(), id)
	if err != nil {
		return false, err
	}

	return target.Role == role, nil
}

func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := app.readTargetUser(w, r)
	if !ok {
		return
	}

	var input userservice.UpdateUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	if input.Role != "" {
		allowed, err := app.roleChangeAllowed(r, id, input.Role)
		if err != nil {
			app.serviceErrorResponse(w, r, err)
			return
		}
		if !allowed {
			app.forbiddenResponse(w, r)
			return
		}
	}

	user, err := app.userService.UpdateUser(r.Context(), id, input)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, user, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) patchUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := app.readTargetUser(w, r)
	if !ok {
		return
	}

	var input userservice.PatchUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	if input.Role != nil {
		allowed, err := app.roleChangeAllowed(r, id, *input.Role)
		if err != nil {
			app.serviceErrorResponse(w, r, err)
			return
		}
		if !allowed {
			app.forbiddenResponse(w, r)
			return
		}
	}

	user, err := app.userService.PatchUser(r.Context(), id, input)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, user, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := app.readTargetUser(w, r)
	if !ok {
		return
	}

	err := app.userService.DeleteUser(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "user deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateUserRoleHandler takes the bare role as the body, either as a JSON string
// ("ROLE_AUTHOR") or as plain text (ROLE_AUTHOR).
func (app *application) updateUserRoleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input, err := app.readRoleBody(w, r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	role, err := userservice.ParseRole(input)
	if err != nil {
		app.failedValidationErrorResponse(w, r, map[string]string{"role": "must be one of ROLE_USER, ROLE_AUTHOR, ROLE_ADMIN"})
		return
	}

	user, err := app.userService.UpdateRole(r.Context(), id, role)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, user, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) readRoleBody(w http.ResponseWriter, r *http.Request) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1024))
	if err != nil {
		return "", errors.New("request body must not be larger than 1024 bytes")
	}

	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return "", errors.New("request body must not be empty")
	}

	if strings.HasPrefix(raw, `"`) {
		var role string
		if err := json.Unmarshal([]byte(raw), &role); err != nil {
			return "", errors.New("request body contains badly-formed JSON")
		}
		return role, nil
	}

	return raw, nil
}
