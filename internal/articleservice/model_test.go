package articleservice

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/pressroom/internal/common"
)

var articleColumns = []string{"id", "title", "content", "summary", "created_date", "updated_date", "author_id", "username"}

func newMockModel(t *testing.T) (*ArticleModel, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return newArticleModel(db), mock
}

func TestArticleModel_GetArticles(t *testing.T) {
	authorID := uuid.New()

	testCases := []struct {
		name      string
		filter    ListFilter
		wantQuery string
		wantArgs  []driver.Value
	}{
		{
			name:      "defaults",
			filter:    ListFilter{Limit: 10, SortBy: SortByCreatedDate, SortDirection: SortAsc},
			wantQuery: "ORDER BY a.created_date ASC, a.id ASC\n\t\tLIMIT $1 OFFSET $2",
			wantArgs:  []driver.Value{10, 0},
		},
		{
			name:      "second page sorted by title descending",
			filter:    ListFilter{From: 2, Limit: 5, SortBy: SortByTitle, SortDirection: SortDesc},
			wantQuery: "ORDER BY a.title DESC, a.id ASC\n\t\tLIMIT $1 OFFSET $2",
			wantArgs:  []driver.Value{5, 10},
		},
		{
			name:      "all filters",
			filter:    ListFilter{Limit: 10, SortBy: SortByUpdatedDate, SortDirection: SortAsc, Title: "T", Author: "a", AuthorID: &authorID},
			wantQuery: "WHERE a.title = $1 AND u.username = $2 AND a.author_id = $3\n\t\tORDER BY a.updated_date ASC, a.id ASC\n\t\tLIMIT $4 OFFSET $5",
			wantArgs:  []driver.Value{"T", "a", authorID, 10, 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, mock := newMockModel(t)

			mock.ExpectQuery(regexp.QuoteMeta(tc.wantQuery)).
				WithArgs(tc.wantArgs...).
				WillReturnRows(sqlmock.NewRows(articleColumns))

			got, err := m.getArticles(context.Background(), tc.filter)
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestArticleModel_GetArticleByID(t *testing.T) {
	id := uuid.New()
	authorID := uuid.New()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		m, mock := newMockModel(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE a.id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(articleColumns).
				AddRow(id.String(), "T", "C", "C", now, now, authorID.String(), "a"))

		got, err := m.getArticleByID(context.Background(), id)
		require.NoError(t, err)

		want := &Article{ID: id, Title: "T", Content: "C", Summary: "C", CreatedDate: now, UpdatedDate: now, Author: "a", AuthorID: authorID}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("article mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("not found", func(t *testing.T) {
		m, mock := newMockModel(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE a.id = $1")).WithArgs(id).WillReturnError(sql.ErrNoRows)

		_, err := m.getArticleByID(context.Background(), id)
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
	})
}

func TestArticleModel_Insert_MissingAuthor(t *testing.T) {
	m, mock := newMockModel(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO articles")).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "articles_author_id_fkey"})

	err := m.insert(context.Background(), &Article{ID: uuid.New(), AuthorID: uuid.New()})
	assert.ErrorIs(t, err, ErrAuthorNotFound)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func TestArticleModel_Delete(t *testing.T) {
	id := uuid.New()

	testCases := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, wantErr: common.ErrRecordNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, mock := newMockModel(t)
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles")).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, tc.affected))

			err := m.delete(context.Background(), id)
			assert.Equal(t, tc.wantErr, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
