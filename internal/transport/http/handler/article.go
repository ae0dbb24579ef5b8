package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"knowledgehub/internal/app"
	"knowledgehub/internal/model"
	"knowledgehub/internal/transport/http/middleware"
	"knowledgehub/internal/transport/http/response"
)

type ArticleHandler struct {
	articleService *app.ArticleService
}

type ArticleRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"max=64"`
	Tags     string `json:"tags" binding:"max=255"`
}

type ArticleResponse struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Summary    string    `json:"summary"`
	Category   string    `json:"category"`
	Tags       string    `json:"tags"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewArticleHandler(articleService *app.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.articleService.List(c.Query("keyword"), c.Query("category"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list articles failed")
		return
	}

	out := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, toArticleResponse(&articles[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	article, err := h.articleService.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrArticleNotFound):
			response.Error(c, http.StatusNotFound, response.CodeArticleNotFound, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get article failed")
		}
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

func (h *ArticleHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), app.ArticleInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	}, userID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create article failed")
		}
		return
	}

	c.JSON(http.StatusCreated, toArticleResponse(article))
}

func (h *ArticleHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}
	id, ok := articleID(c)
	if !ok {
		return
	}

	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), id, app.ArticleInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	}, userID)
	if err != nil {
		handleMutationError(c, err, "update article failed")
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}
	id, ok := articleID(c)
	if !ok {
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), id, userID); err != nil {
		handleMutationError(c, err, "delete article failed")
		return
	}

	c.Status(http.StatusNoContent)
}

func handleMutationError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, app.ErrArticleNotFound):
		response.Error(c, http.StatusNotFound, response.CodeArticleNotFound, err.Error())
	case errors.Is(err, app.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallbackMsg)
	}
}

func articleID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid article id")
		return 0, false
	}
	return uint(parsed), true
}

func toArticleResponse(article *model.Article) ArticleResponse {
	return ArticleResponse{
		ID:         article.ID,
		Title:      article.Title,
		Content:    article.Content,
		Summary:    article.Summary,
		Category:   article.Category,
		Tags:       article.Tags,
		AuthorName: article.Author.Username,
		CreatedAt:  article.CreatedAt,
		UpdatedAt:  article.UpdatedAt,
	}
}
