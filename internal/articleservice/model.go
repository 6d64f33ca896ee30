package articleservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sushihentaime/pressroom/internal/common"
)

var (
	ErrAuthorNotFound = fmt.Errorf("author %w", common.ErrRecordNotFound)
)

const selectArticle = `
		SELECT a.id, a.title, a.content, a.summary, a.created_date, a.updated_date, a.author_id, u.username
		FROM articles a
		JOIN users u ON a.author_id = u.id`

func newArticleModel(db *sql.DB) *ArticleModel {
	return &ArticleModel{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*Article, error) {
	var a Article

	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Summary, &a.CreatedDate, &a.UpdatedDate, &a.AuthorID, &a.Author)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (m *ArticleModel) queryArticles(ctx context.Context, query string, args ...any) ([]*Article, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (m *ArticleModel) insert(ctx context.Context, a *Article) error {
	query := `
		INSERT INTO articles (id, title, content, summary, created_date, updated_date, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := m.db.ExecContext(ctx, query, a.ID, a.Title, a.Content, a.Summary, a.CreatedDate, a.UpdatedDate, a.AuthorID)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "articles_author_id_fkey"):
			return ErrAuthorNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *ArticleModel) getArticleByID(ctx context.Context, id uuid.UUID) (*Article, error) {
	query := selectArticle + `
		WHERE a.id = $1`

	a, err := scanArticle(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return a, nil
}

// getArticles builds the WHERE clause from the filter. Sort column and direction
// come from a fixed set, everything else is passed as a parameter.
func (m *ArticleModel) getArticles(ctx context.Context, f ListFilter) ([]*Article, error) {
	var (
		conds []string
		args  []any
	)

	if f.Title != "" {
		args = append(args, f.Title)
		conds = append(conds, fmt.Sprintf("a.title = $%d", len(args)))
	}
	if f.Author != "" {
		args = append(args, f.Author)
		conds = append(conds, fmt.Sprintf("u.username = $%d", len(args)))
	}
	if f.AuthorID != nil {
		args = append(args, *f.AuthorID)
		conds = append(conds, fmt.Sprintf("a.author_id = $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(selectArticle)
	if len(conds) > 0 {
		sb.WriteString("\n\t\tWHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	direction := "ASC"
	if f.SortDirection == SortDesc {
		direction = "DESC"
	}

	args = append(args, f.Limit, f.From*f.Limit)
	fmt.Fprintf(&sb, "\n\t\tORDER BY %s %s, a.id ASC\n\t\tLIMIT $%d OFFSET $%d", sortColumns[f.SortBy], direction, len(args)-1, len(args))

	return m.queryArticles(ctx, sb.String(), args...)
}

func (m *ArticleModel) getLatestArticles(ctx context.Context, n int) ([]*Article, error) {
	query := selectArticle + `
		ORDER BY a.created_date DESC, a.id ASC
		LIMIT $1`

	return m.queryArticles(ctx, query, n)
}

func (m *ArticleModel) getArticlesByAuthorID(ctx context.Context, authorID uuid.UUID) ([]*Article, error) {
	query := selectArticle + `
		WHERE a.author_id = $1
		ORDER BY a.created_date DESC`

	return m.queryArticles(ctx, query, authorID)
}

func (m *ArticleModel) update(ctx context.Context, a *Article) error {
	query := `
		UPDATE articles
		SET title = $1, content = $2, summary = $3, updated_date = $4, author_id = $5
		WHERE id = $6`

	res, err := m.db.ExecContext(ctx, query, a.Title, a.Content, a.Summary, a.UpdatedDate, a.AuthorID, a.ID)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "articles_author_id_fkey"):
			return ErrAuthorNotFound
		default:
			return err
		}
	}

	return checkAffected(res)
}

func (m *ArticleModel) delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM articles
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
