package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/park285/comment-insight-go/internal/httperror"
	"github.com/park285/comment-insight-go/internal/middleware"
)

// writeError: 에러 응답을 작성합니다.
func writeError(c *gin.Context, err error) {
	if c == nil {
		return
	}
	status, payload := httperror.Response(err, middleware.GetRequestID(c))
	c.JSON(status, payload)
}
