package routes

import (
	"quotedraft/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathConversations = "/conversations"
)

func addConversationRoutes(rg *gin.RouterGroup, conversationHandler *handlers.ConversationHandler) {
	conversations := rg.Group(PathConversations)
	{
		conversations.POST("/:conversation_id/events", conversationHandler.HandleEvent)
		conversations.POST("/:conversation_id/reset", conversationHandler.ResetConversation)
	}
}
