package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the verification and delivery endpoints on r.
func RegisterRoutes(r gin.IRoutes, h Handler) {
	r.GET("/webhook", h.Verify)
	r.POST("/webhook", h.Receive)
}
