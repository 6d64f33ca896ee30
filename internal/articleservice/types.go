package articleservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sushihentaime/pressroom/internal/common"
)

type Article struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	// Content is stored in Markdown format.
	Content     string    `json:"content"`
	Summary     string    `json:"summary"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
	Author      string    `json:"author"`
	AuthorID    uuid.UUID `json:"authorId"`
}

type ArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListFilter selects a page of articles. Zero values fall back to the defaults.
type ListFilter struct {
	From          int
	Limit         int
	SortBy        string
	SortDirection string
	Title         string
	Author        string
	AuthorID      *uuid.UUID
}

type ArticleModel struct {
	db *sql.DB
}

type ArticleService struct {
	m      *ArticleModel
	mb     common.MessageProducer
	logger *slog.Logger
}

type articleEvent struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	AuthorID uuid.UUID `json:"authorId"`
	Author   string    `json:"author"`
}
