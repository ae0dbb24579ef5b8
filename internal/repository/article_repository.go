package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"knowledgehub/internal/model"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Mutations omit the Author association: the author row is owned by the
// user repository and must never be written through an article.
func (r *ArticleRepository) Create(article *model.Article) error {
	if err := r.db.Omit("Author").Create(article).Error; err != nil {
		return fmt.Errorf("create article failed: %w", err)
	}
	return nil
}

func (r *ArticleRepository) GetByID(id uint) (*model.Article, error) {
	var article model.Article
	if err := r.db.Preload("Author").First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query article by id failed: %w", err)
	}
	return &article, nil
}

func (r *ArticleRepository) Update(article *model.Article) error {
	if err := r.db.Omit("Author").Save(article).Error; err != nil {
		return fmt.Errorf("update article failed: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Article{}, id).Error; err != nil {
		return fmt.Errorf("delete article failed: %w", err)
	}
	return nil
}

// List queries below always order by created_at DESC so consumers see a
// stable newest-first order instead of whatever plan MySQL picks.

func (r *ArticleRepository) ListAll() ([]model.Article, error) {
	var articles []model.Article
	if err := r.db.Preload("Author").Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("list articles failed: %w", err)
	}
	return articles, nil
}

// Search matches keyword as a case-insensitive substring of title,
// content or tags.
func (r *ArticleRepository) Search(keyword string) ([]model.Article, error) {
	var articles []model.Article
	pattern := likePattern(keyword)
	if err := r.db.Preload("Author").
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags) LIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("search articles failed: %w", err)
	}
	return articles, nil
}

func (r *ArticleRepository) ListByCategory(category string) ([]model.Article, error) {
	var articles []model.Article
	if err := r.db.Preload("Author").
		Where("LOWER(category) = ?", strings.ToLower(category)).
		Order("created_at DESC").
		Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("list articles by category failed: %w", err)
	}
	return articles, nil
}

func (r *ArticleRepository) SearchInCategory(keyword, category string) ([]model.Article, error) {
	var articles []model.Article
	pattern := likePattern(keyword)
	if err := r.db.Preload("Author").
		Where("(LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags) LIKE ?) AND LOWER(category) = ?",
			pattern, pattern, pattern, strings.ToLower(category)).
		Order("created_at DESC").
		Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("search articles in category failed: %w", err)
	}
	return articles, nil
}

func likePattern(keyword string) string {
	return "%" + strings.ToLower(keyword) + "%"
}
