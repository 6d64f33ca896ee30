package main

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/sushihentaime/pressroom/internal/articleservice"
)

// readListFilter reads from, limit, sortBy, sortDirection, title, author and authorId.
func (app *application) readListFilter(r *http.Request) (articleservice.ListFilter, map[string]string) {
	qs := r.URL.Query()
	errs := map[string]string{}

	var f articleservice.ListFilter
	var err error

	f.From, err = app.readInt(qs, "from", 0)
	if err != nil {
		errs["from"] = "must be an integer value"
	}

	f.Limit, err = app.readInt(qs, "limit", articleservice.DefaultLimit)
	if err != nil {
		errs["limit"] = "must be an integer value"
	}

	f.SortBy = qs.Get("sortBy")
	f.SortDirection = strings.ToLower(qs.Get("sortDirection"))
	f.Title = qs.Get("title")
	f.Author = qs.Get("author")

	if s := qs.Get("authorId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			errs["authorId"] = "must be a valid UUID"
		} else {
			f.AuthorID = &id
		}
	}

	return f, errs
}

func (app *application) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	filter, errs := app.readListFilter(r)
	if len(errs) > 0 {
		app.failedValidationErrorResponse(w, r, errs)
		return
	}

	articles, err := app.articleService.GetArticles(r.Context(), filter)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, articles, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// getArticleHandler serves both GET /articles/latest and GET /articles/:id.
func (app *application) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	if httprouter.ParamsFromContext(r.Context()).ByName("id") == "latest" {
		app.latestArticlesHandler(w, r)
		return
	}

	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	article, err := app.articleService.GetArticleByID(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, article, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) latestArticlesHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := app.readInt(r.URL.Query(), "limit", articleservice.DefaultLimit)
	if err != nil {
		app.failedValidationErrorResponse(w, r, map[string]string{"limit": "must be an integer value"})
		return
	}

	articles, err := app.articleService.GetLatestArticles(r.Context(), limit)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, articles, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createArticleHandler(w http.ResponseWriter, r *http.Request) {
	var input articleservice.ArticleRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	article, err := app.articleService.CreateArticle(r.Context(), input, app.getUserContext(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, article, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input articleservice.ArticleRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	article, err := app.articleService.UpdateArticle(r.Context(), id, input, app.getUserContext(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, article, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.articleService.DeleteArticle(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "article deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
