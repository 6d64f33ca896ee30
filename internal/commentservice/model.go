package commentservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sushihentaime/pressroom/internal/articleservice"
	"github.com/sushihentaime/pressroom/internal/common"
)

var (
	ErrArticleNotFound = fmt.Errorf("article %w", common.ErrRecordNotFound)
)

// selectComment joins the comment author and the article with its own author.
const selectComment = `
		SELECT c.id, c.text, c.created_date, c.author_id, u.username,
			a.id, a.title, a.content, a.summary, a.created_date, a.updated_date, a.author_id, au.username
		FROM comments c
		JOIN users u ON c.author_id = u.id
		JOIN articles a ON c.article_id = a.id
		JOIN users au ON a.author_id = au.id`

func newCommentModel(db *sql.DB) *CommentModel {
	return &CommentModel{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (*Comment, error) {
	c := Comment{Article: &articleservice.Article{}}
	a := c.Article

	err := row.Scan(&c.ID, &c.Text, &c.CreatedDate, &c.AuthorID, &c.AuthorName,
		&a.ID, &a.Title, &a.Content, &a.Summary, &a.CreatedDate, &a.UpdatedDate, &a.AuthorID, &a.Author)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (m *CommentModel) queryComments(ctx context.Context, query string, args ...any) ([]*Comment, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (m *CommentModel) insert(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (id, text, created_date, article_id, author_id)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := m.db.ExecContext(ctx, query, c.ID, c.Text, c.CreatedDate, c.Article.ID, c.AuthorID)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "comments_article_id_fkey"):
			return ErrArticleNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *CommentModel) getCommentByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	query := selectComment + `
		WHERE c.id = $1`

	c, err := scanComment(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return c, nil
}

func (m *CommentModel) getCommentsByArticle(ctx context.Context, articleID uuid.UUID) ([]*Comment, error) {
	query := selectComment + `
		WHERE c.article_id = $1
		ORDER BY c.created_date ASC, c.id ASC`

	return m.queryComments(ctx, query, articleID)
}

func (m *CommentModel) getComments(ctx context.Context) ([]*Comment, error) {
	query := selectComment + `
		ORDER BY c.created_date ASC, c.id ASC`

	return m.queryComments(ctx, query)
}

func (m *CommentModel) updateText(ctx context.Context, id uuid.UUID, text string) error {
	query := `
		UPDATE comments
		SET text = $1
		WHERE id = $2`

	res, err := m.db.ExecContext(ctx, query, text, id)
	if err != nil {
		return err
	}

	return checkAffected(res)
}

func (m *CommentModel) delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM comments
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
