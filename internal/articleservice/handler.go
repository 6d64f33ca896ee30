package articleservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sushihentaime/pressroom/internal/common"
	"github.com/sushihentaime/pressroom/internal/userservice"
)

func NewArticleService(db *sql.DB, mb common.MessageProducer, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		m:      newArticleModel(db),
		mb:     mb,
		logger: logger,
	}
}

// GetArticles returns one page of articles matching the filter.
func (s *ArticleService) GetArticles(ctx context.Context, f ListFilter) ([]*Article, error) {
	f.applyDefaults()

	v := common.NewValidator()
	validateListFilter(v, f)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getArticles(ctx, f)
}

func (s *ArticleService) GetArticleByID(ctx context.Context, id uuid.UUID) (*Article, error) {
	return s.m.getArticleByID(ctx, id)
}

// GetLatestArticles returns the n most recently created articles, newest first.
func (s *ArticleService) GetLatestArticles(ctx context.Context, n int) ([]*Article, error) {
	v := common.NewValidator()
	v.Check(n > 0, "limit", "must be greater than zero")
	v.Check(n <= MaxLimit, "limit", "must not be more than 100")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getLatestArticles(ctx, n)
}

func (s *ArticleService) GetArticlesByAuthorID(ctx context.Context, authorID uuid.UUID) ([]*Article, error) {
	return s.m.getArticlesByAuthorID(ctx, authorID)
}

// CreateArticle stores a new article written by author and publishes an article.published event.
func (s *ArticleService) CreateArticle(ctx context.Context, req ArticleRequest, author *userservice.User) (*Article, error) {
	req.Content = sanitizeMarkdown(req.Content)

	v := common.NewValidator()
	validateArticle(v, req)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	now := common.Now()
	a := &Article{
		ID:          uuid.New(),
		Title:       req.Title,
		Content:     req.Content,
		Summary:     GenerateSummary(req.Content),
		CreatedDate: now,
		UpdatedDate: now,
		Author:      author.Username,
		AuthorID:    author.ID,
	}

	if err := s.m.insert(ctx, a); err != nil {
		return nil, err
	}

	s.publish(ctx, articleEvent{ID: a.ID, Title: a.Title, AuthorID: a.AuthorID, Author: a.Author})

	return a, nil
}

// UpdateArticle replaces title and content. The caller becomes the article's author.
func (s *ArticleService) UpdateArticle(ctx context.Context, id uuid.UUID, req ArticleRequest, author *userservice.User) (*Article, error) {
	a, err := s.m.getArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Content = sanitizeMarkdown(req.Content)

	v := common.NewValidator()
	validateArticle(v, req)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	a.Title = req.Title
	a.Content = req.Content
	a.Summary = GenerateSummary(req.Content)
	a.UpdatedDate = common.Now()
	a.Author = author.Username
	a.AuthorID = author.ID

	if err := s.m.update(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// DeleteArticle removes the article and, through the foreign key, its comments.
func (s *ArticleService) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	return s.m.delete(ctx, id)
}

func (s *ArticleService) publish(ctx context.Context, event articleEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("could not encode event", "key", common.ArticlePublishedKey, "error", err)
		return
	}

	if err := s.mb.Publish(ctx, msg, common.ArticlePublishedKey, common.EventsExchange); err != nil {
		s.logger.Error("could not publish event", "key", common.ArticlePublishedKey, "error", err)
	}
}
