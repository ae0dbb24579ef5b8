package response

import "github.com/gin-gonic/gin"

// Business codes carried alongside the HTTP status in error bodies.
const (
	CodeBadRequest         = 40000
	CodeUsernameExists     = 40001
	CodeEmailExists        = 40002
	CodeUnauthorized       = 40100
	CodeInvalidCredentials = 40101
	CodeForbidden          = 40300
	CodeArticleNotFound    = 40400
	CodeInternalServer     = 50000
)

type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, ErrorBody{
		Code:    code,
		Message: message,
	})
}
