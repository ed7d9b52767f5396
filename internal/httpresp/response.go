package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Message struct {
	Message string `json:"message"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Text answers 200 with {"message": msg}.
func Text(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Message{Message: msg})
}
