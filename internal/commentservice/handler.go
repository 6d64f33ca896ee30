package commentservice

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/sushihentaime/pressroom/internal/articleservice"
	"github.com/sushihentaime/pressroom/internal/common"
	"github.com/sushihentaime/pressroom/internal/userservice"
)

func NewCommentService(db *sql.DB, articles *articleservice.ArticleService) *CommentService {
	return &CommentService{
		m:        newCommentModel(db),
		articles: articles,
	}
}

func validateText(v *common.Validator, text string) {
	v.Check(v.NotBlank(text), "text", "must be provided")
}

// GetCommentsByArticle returns the comments of an existing article, oldest first.
func (s *CommentService) GetCommentsByArticle(ctx context.Context, articleID uuid.UUID) ([]*Comment, error) {
	if _, err := s.articles.GetArticleByID(ctx, articleID); err != nil {
		return nil, err
	}

	return s.m.getCommentsByArticle(ctx, articleID)
}

func (s *CommentService) GetComments(ctx context.Context) ([]*Comment, error) {
	return s.m.getComments(ctx)
}

func (s *CommentService) GetCommentByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	return s.m.getCommentByID(ctx, id)
}

func (s *CommentService) CreateComment(ctx context.Context, articleID uuid.UUID, req CommentRequest, author *userservice.User) (*Comment, error) {
	v := common.NewValidator()
	validateText(v, req.Text)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	article, err := s.articles.GetArticleByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	c := &Comment{
		ID:          uuid.New(),
		Text:        req.Text,
		CreatedDate: common.Now(),
		AuthorName:  author.Username,
		AuthorID:    author.ID,
		Article:     article,
	}

	if err := s.m.insert(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// UpdateComment changes the text of a comment. Only its author may do so.
func (s *CommentService) UpdateComment(ctx context.Context, id uuid.UUID, req CommentRequest, user *userservice.User) (*Comment, error) {
	c, err := s.m.getCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.AuthorID != user.ID {
		return nil, common.ErrForbidden
	}

	v := common.NewValidator()
	validateText(v, req.Text)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.updateText(ctx, id, req.Text); err != nil {
		return nil, err
	}

	c.Text = req.Text
	return c, nil
}

// DeleteComment removes a comment written by user. When articleID is set the
// comment must also belong to that article.
func (s *CommentService) DeleteComment(ctx context.Context, id uuid.UUID, articleID *uuid.UUID, user *userservice.User) error {
	c, err := s.m.getCommentByID(ctx, id)
	if err != nil {
		return err
	}

	if articleID != nil && c.Article.ID != *articleID {
		return common.ErrRecordNotFound
	}

	if c.AuthorID != user.ID {
		return common.ErrForbidden
	}

	return s.m.delete(ctx, id)
}
