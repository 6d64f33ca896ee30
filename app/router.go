package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/sushihentaime/pressroom/internal/userservice"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	var (
		user   = userservice.RoleUser
		author = userservice.RoleAuthor
		admin  = userservice.RoleAdmin
	)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	// users
	router.HandlerFunc(http.MethodPost, "/users/signup", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/users/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/users/logout", app.requireRole(app.logoutUserHandler, user))
	router.HandlerFunc(http.MethodGet, "/users", app.requireRole(app.listUsersHandler, admin))
	// GET /users/me is dispatched by getUserHandler.
	router.HandlerFunc(http.MethodGet, "/users/:id", app.requireRole(app.getUserHandler, user))
	router.HandlerFunc(http.MethodPut, "/users/:id", app.requireRole(app.updateUserHandler, user))
	router.HandlerFunc(http.MethodPatch, "/users/:id", app.requireRole(app.patchUserHandler, user))
	router.HandlerFunc(http.MethodDelete, "/users/:id", app.requireRole(app.deleteUserHandler, user))
	router.HandlerFunc(http.MethodPut, "/users/:id/role", app.requireRole(app.updateUserRoleHandler, admin))

	// auth
	router.HandlerFunc(http.MethodGet, "/auth/check-permission", app.requireRole(app.checkPermissionHandler, user))
	router.HandlerFunc(http.MethodGet, "/auth/user-info", app.requireRole(app.userInfoHandler, user))

	// articles
	router.HandlerFunc(http.MethodGet, "/articles", app.listArticlesHandler)
	router.HandlerFunc(http.MethodPost, "/articles", app.requireRole(app.createArticleHandler, user))
	// GET /articles/latest is dispatched by getArticleHandler.
	router.HandlerFunc(http.MethodGet, "/articles/:id", app.getArticleHandler)
	router.HandlerFunc(http.MethodPut, "/articles/:id", app.requireRole(app.updateArticleHandler, author))
	router.HandlerFunc(http.MethodDelete, "/articles/:id", app.requireRole(app.deleteArticleHandler, admin))

	// comments
	router.HandlerFunc(http.MethodGet, "/articles/:id/comments", app.requireRole(app.listArticleCommentsHandler, user))
	router.HandlerFunc(http.MethodPost, "/articles/:id/comments", app.requireRole(app.createCommentHandler, user))
	router.HandlerFunc(http.MethodDelete, "/articles/:id/comments/:commentId", app.requireRole(app.deleteArticleCommentHandler, user))
	router.HandlerFunc(http.MethodGet, "/comments", app.requireRole(app.listCommentsHandler, admin))
	router.HandlerFunc(http.MethodGet, "/comments/:id", app.requireRole(app.getCommentHandler, user))
	router.HandlerFunc(http.MethodPut, "/comments/:id", app.requireRole(app.updateCommentHandler, user))
	router.HandlerFunc(http.MethodDelete, "/comments/:id", app.requireRole(app.deleteCommentHandler, user))

	return app.recoverPanic(app.logRequest(app.authenticate(router)))
}
