package handlers

import (
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

// render writes a component to the response with the given status.
func render(c *gin.Context, status int, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = component.Render(c.Request.Context(), c.Writer)
}
