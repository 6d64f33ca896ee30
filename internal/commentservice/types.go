package commentservice

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/sushihentaime/pressroom/internal/articleservice"
)

type Comment struct {
	ID          uuid.UUID               `json:"id"`
	Text        string                  `json:"text"`
	CreatedDate time.Time               `json:"createdDate"`
	AuthorName  string                  `json:"authorName"`
	AuthorID    uuid.UUID               `json:"authorId"`
	Article     *articleservice.Article `json:"article"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type CommentModel struct {
	db *sql.DB
}

type CommentService struct {
	m        *CommentModel
	articles *articleservice.ArticleService
}
