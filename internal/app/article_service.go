package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"knowledgehub/internal/model"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrForbidden       = errors.New("not the article owner")
)

// defaultSummary is stored when summary generation fails outright;
// article writes must succeed even with the AI backend down.
const defaultSummary = "No summary available."

type ArticleStore interface {
	Create(article *model.Article) error
	GetByID(id uint) (*model.Article, error)
	Update(article *model.Article) error
	Delete(id uint) error
	ListAll() ([]model.Article, error)
	Search(keyword string) ([]model.Article, error)
	ListByCategory(category string) ([]model.Article, error)
	SearchInCategory(keyword, category string) ([]model.Article, error)
}

// ArticleCache is a read cache of single articles. Implementations may
// be nil-checked away; cache errors never fail a request.
type ArticleCache interface {
	Get(ctx context.Context, id uint) (*model.Article, bool, error)
	Set(ctx context.Context, article *model.Article) error
	Delete(ctx context.Context, id uint) error
}

// ActivityPublisher enqueues audit events for async persistence.
type ActivityPublisher interface {
	Publish(ctx context.Context, event model.ActivityEvent) error
}

type ArticleService struct {
	articleRepo ArticleStore
	userRepo    UserStore
	generator   TextGenerator
	cache       ArticleCache
	publisher   ActivityPublisher
}

type ArticleInput struct {
	Title    string
	Content  string
	Category string
	Tags     string
}

func NewArticleService(
	articleRepo ArticleStore,
	userRepo UserStore,
	generator TextGenerator,
	cache ArticleCache,
	publisher ActivityPublisher,
) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		userRepo:    userRepo,
		generator:   generator,
		cache:       cache,
		publisher:   publisher,
	}
}

// List supports four query modes: unfiltered, keyword substring match
// (title/content/tags, case-insensitive), exact category match
// (case-insensitive), or both combined with AND.
func (s *ArticleService) List(keyword, category string) ([]model.Article, error) {
	keyword = strings.TrimSpace(keyword)
	category = strings.TrimSpace(category)

	switch {
	case keyword != "" && category != "":
		return s.articleRepo.SearchInCategory(keyword, category)
	case keyword != "":
		return s.articleRepo.Search(keyword)
	case category != "":
		return s.articleRepo.ListByCategory(category)
	default:
		return s.articleRepo.ListAll()
	}
}

func (s *ArticleService) Get(ctx context.Context, id uint) (*model.Article, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}

	if s.cache != nil {
		if cached, hit, err := s.cache.Get(ctx, id); err == nil && hit {
			return cached, nil
		}
	}

	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, article)
	}
	return article, nil
}

func (s *ArticleService) Create(ctx context.Context, input ArticleInput, authorID uint) (*model.Article, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if authorID == 0 || title == "" || content == "" {
		return nil, ErrInvalidInput
	}

	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	summary := s.generator.CompleteOrFallback(ctx, summaryPrompt(content), defaultSummary)

	now := time.Now()
	article := &model.Article{
		Title:     title,
		Content:   content,
		Summary:   summary,
		Category:  strings.TrimSpace(input.Category),
		Tags:      strings.TrimSpace(input.Tags),
		AuthorID:  author.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}
	article.Author = *author

	s.publishActivity(ctx, model.ActivityCreated, article)
	return article, nil
}

func (s *ArticleService) Update(ctx context.Context, id uint, input ArticleInput, requesterID uint) (*model.Article, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if id == 0 || requesterID == 0 || title == "" || content == "" {
		return nil, ErrInvalidInput
	}

	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	if article.AuthorID != requesterID {
		return nil, ErrForbidden
	}

	article.Title = title
	article.Content = content
	article.Category = strings.TrimSpace(input.Category)
	article.Tags = strings.TrimSpace(input.Tags)
	article.Summary = s.generator.CompleteOrFallback(ctx, summaryPrompt(content), defaultSummary)
	article.UpdatedAt = time.Now()

	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, id)
	}

	s.publishActivity(ctx, model.ActivityUpdated, article)
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, id, requesterID uint) error {
	if id == 0 || requesterID == 0 {
		return ErrInvalidInput
	}

	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrArticleNotFound
	}
	if article.AuthorID != requesterID {
		return ErrForbidden
	}

	if err := s.articleRepo.Delete(id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, id)
	}

	s.publishActivity(ctx, model.ActivityDeleted, article)
	return nil
}

// publishActivity is best-effort: a broker outage must not fail the
// article write that already happened.
func (s *ArticleService) publishActivity(ctx context.Context, action string, article *model.Article) {
	if s.publisher == nil {
		return
	}
	event := model.ActivityEvent{
		ArticleID: article.ID,
		ActorID:   article.AuthorID,
		Action:    action,
		Title:     article.Title,
		CreatedAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("publish article activity failed: %v", err)
	}
}
