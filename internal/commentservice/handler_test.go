package commentservice

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/pressroom/internal/articleservice"
	"github.com/sushihentaime/pressroom/internal/common"
	"github.com/sushihentaime/pressroom/internal/userservice"
)

var commentColumns = []string{
	"id", "text", "created_date", "author_id", "username",
	"id", "title", "content", "summary", "created_date", "updated_date", "author_id", "username",
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newMockService(t *testing.T) (*CommentService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	articles := articleservice.NewArticleService(db, common.NopProducer{}, testLogger())
	return NewCommentService(db, articles), mock
}

type fixture struct {
	commentID uuid.UUID
	articleID uuid.UUID
	owner     *userservice.User
	other     *userservice.User
}

func newFixture() fixture {
	return fixture{
		commentID: uuid.New(),
		articleID: uuid.New(),
		owner:     &userservice.User{ID: uuid.New(), Username: "owner", Role: userservice.RoleUser},
		other:     &userservice.User{ID: uuid.New(), Username: "other", Role: userservice.RoleAdmin},
	}
}

func (f fixture) expectComment(mock sqlmock.Sqlmock) {
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WithArgs(f.commentID).
		WillReturnRows(sqlmock.NewRows(commentColumns).AddRow(
			f.commentID.String(), "hi", now, f.owner.ID.String(), f.owner.Username,
			f.articleID.String(), "T", "C", "C", now, now, f.owner.ID.String(), f.owner.Username,
		))
}

func TestDeleteComment_Mock(t *testing.T) {
	f := newFixture()
	otherArticle := uuid.New()

	testCases := []struct {
		name      string
		user      *userservice.User
		articleID *uuid.UUID
		expectDel bool
		wantErr   error
	}{
		{name: "owner", user: f.owner, expectDel: true},
		{name: "owner through article path", user: f.owner, articleID: &f.articleID, expectDel: true},
		{name: "non owner", user: f.other, wantErr: common.ErrForbidden},
		{name: "wrong article", user: f.owner, articleID: &otherArticle, wantErr: common.ErrRecordNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, mock := newMockService(t)
			f.expectComment(mock)
			if tc.expectDel {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments")).
					WithArgs(f.commentID).
					WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := s.DeleteComment(context.Background(), f.commentID, tc.articleID, tc.user)
			assert.Equal(t, tc.wantErr, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeleteComment_NotFound(t *testing.T) {
	s, mock := newMockService(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).WithArgs(id).WillReturnError(sql.ErrNoRows)

	err := s.DeleteComment(context.Background(), id, nil, newFixture().owner)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func TestUpdateComment_Mock(t *testing.T) {
	f := newFixture()

	t.Run("owner", func(t *testing.T) {
		s, mock := newMockService(t)
		f.expectComment(mock)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE comments")).
			WithArgs("edited", f.commentID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		c, err := s.UpdateComment(context.Background(), f.commentID, CommentRequest{Text: "edited"}, f.owner)
		require.NoError(t, err)
		assert.Equal(t, "edited", c.Text)
		assert.Equal(t, f.articleID, c.Article.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non owner", func(t *testing.T) {
		s, mock := newMockService(t)
		f.expectComment(mock)

		_, err := s.UpdateComment(context.Background(), f.commentID, CommentRequest{Text: "edited"}, f.other)
		assert.ErrorIs(t, err, common.ErrForbidden)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty text", func(t *testing.T) {
		s, mock := newMockService(t)
		f.expectComment(mock)

		_, err := s.UpdateComment(context.Background(), f.commentID, CommentRequest{Text: ""}, f.owner)
		assert.Equal(t, common.ValidationError{Errors: map[string]string{"text": "must be provided"}}, err)
	})
}

func TestCreateComment_Mock(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		s, mock := newMockService(t)

		_, err := s.CreateComment(context.Background(), uuid.New(), CommentRequest{}, newFixture().owner)
		assert.Equal(t, common.ValidationError{Errors: map[string]string{"text": "must be provided"}}, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing article", func(t *testing.T) {
		s, mock := newMockService(t)
		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta("WHERE a.id = $1")).WithArgs(id).WillReturnError(sql.ErrNoRows)

		_, err := s.CreateComment(context.Background(), id, CommentRequest{Text: "hi"}, newFixture().owner)
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func setupTestUser(t *testing.T, db *sql.DB, username string) *userservice.User {
	t.Helper()

	u := &userservice.User{ID: uuid.New(), Username: username, Role: userservice.RoleUser}

	_, err := db.Exec(`
		INSERT INTO users (id, username, first_name, last_name, email, password, role, created_date)
		VALUES ($1, $2, 'First', 'Last', $3, $4, $5, NOW())`,
		u.ID, u.Username, username+"@example.com", []byte("hash"), u.Role)
	require.NoError(t, err)

	return u
}

func TestCommentService_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := common.TestDB(t)
	articles := articleservice.NewArticleService(db, common.NopProducer{}, testLogger())
	s := NewCommentService(db, articles)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	alice := setupTestUser(t, db, "alice")
	bob := setupTestUser(t, db, "bob")

	article, err := articles.CreateArticle(ctx, articleservice.ArticleRequest{Title: "T", Content: "C"}, alice)
	require.NoError(t, err)

	first, err := s.CreateComment(ctx, article.ID, CommentRequest{Text: "first"}, bob)
	require.NoError(t, err)
	assert.Equal(t, "bob", first.AuthorName)
	assert.Equal(t, "alice", first.Article.Author)

	_, err = s.CreateComment(ctx, article.ID, CommentRequest{Text: "second"}, alice)
	require.NoError(t, err)

	t.Run("list by article oldest first", func(t *testing.T) {
		got, err := s.GetCommentsByArticle(ctx, article.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0].Text)
		assert.Equal(t, "second", got[1].Text)
	})

	t.Run("list for unknown article", func(t *testing.T) {
		_, err := s.GetCommentsByArticle(ctx, uuid.New())
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
	})

	t.Run("non owner cannot delete", func(t *testing.T) {
		err := s.DeleteComment(ctx, first.ID, &article.ID, alice)
		assert.ErrorIs(t, err, common.ErrForbidden)

		_, err = s.GetCommentByID(ctx, first.ID)
		assert.NoError(t, err)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, s.DeleteComment(ctx, first.ID, &article.ID, bob))

		_, err := s.GetCommentByID(ctx, first.ID)
		assert.ErrorIs(t, err, common.ErrRecordNotFound)

		all, err := s.GetComments(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("deleting the author removes their comments", func(t *testing.T) {
		_, err := db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", alice.ID)
		require.NoError(t, err)

		all, err := s.GetComments(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
