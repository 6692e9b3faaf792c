package api

import (
	"encoding/json"
	"net/http"

	"github.com/dmtran91/flybooking/internal/aiclient"
	"github.com/gin-gonic/gin"
)

type AssistantHandler struct {
	client *aiclient.Client
}

func NewAssistantHandler(client *aiclient.Client) *AssistantHandler {
	return &AssistantHandler{client: client}
}

func (h *AssistantHandler) Register(router *gin.RouterGroup) {
	router.POST("/planner", h.run(aiclient.TaskPlanner))
	router.POST("/news", h.run(aiclient.TaskNews))
}

func (h *AssistantHandler) run(task string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload json.RawMessage
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		items, err := h.client.Run(c.Request.Context(), task, payload)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
