package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"knowledgehub/internal/app"
	"knowledgehub/internal/transport/http/response"
)

type AIHandler struct {
	aiService *app.AIService
}

type AIRequest struct {
	Content string `json:"content" binding:"required"`
}

type AIResponse struct {
	Result string `json:"result"`
}

func NewAIHandler(aiService *app.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

// These endpoints always answer 200: AI failures are absorbed into
// fallback text inside the service.

func (h *AIHandler) Improve(c *gin.Context) {
	var req AIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	c.JSON(http.StatusOK, AIResponse{Result: h.aiService.ImproveContent(c.Request.Context(), req.Content)})
}

func (h *AIHandler) Summary(c *gin.Context) {
	var req AIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	c.JSON(http.StatusOK, AIResponse{Result: h.aiService.SummarizeContent(c.Request.Context(), req.Content)})
}

func (h *AIHandler) SuggestTags(c *gin.Context) {
	var req AIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	c.JSON(http.StatusOK, AIResponse{Result: h.aiService.SuggestTags(c.Request.Context(), req.Content)})
}
