package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "crmdesk/internal/interfaces/http/handlers/ticket"
	"crmdesk/internal/interfaces/http/middleware"
	"crmdesk/internal/shared/authorization"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	tickets.Use(config.PermissionMiddleware.RequirePermission("tickets", "read"))
	{
		// Register specific paths BEFORE parameterized paths to avoid route conflicts
		tickets.POST("",
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			config.TicketHandler.ListTickets)
		tickets.POST("/bulk-delete",
			authorization.RequireElevated(),
			config.TicketHandler.BulkDelete)

		// Board moves and lifecycle actions
		tickets.PATCH("/:id/assignee",
			authorization.RequireElevated(),
			config.TicketHandler.AssignTicket)
		tickets.PATCH("/:id/status",
			config.TicketHandler.ChangeStatus)
		tickets.PATCH("/:id/priority",
			config.TicketHandler.ChangePriority)
		tickets.PATCH("/:id/category",
			config.TicketHandler.ChangeCategory)
		tickets.POST("/:id/close",
			config.TicketHandler.CloseTicket)
		tickets.POST("/:id/restore",
			authorization.RequireElevated(),
			config.TicketHandler.RestoreTicket)

		// Thread and audit trail
		tickets.GET("/:id/changelog",
			config.TicketHandler.GetChangeLog)
		tickets.POST("/:id/messages",
			config.TicketHandler.PostMessage)
		tickets.GET("/:id/messages",
			config.TicketHandler.ListMessages)
		tickets.POST("/:id/read",
			config.TicketHandler.MarkRead)
		tickets.POST("/:id/attachments",
			config.TicketHandler.UploadAttachments)

		// Generic parameterized routes last
		tickets.GET("/:id",
			config.TicketHandler.GetTicket)
	}

	attachments := engine.Group("/attachments")
	attachments.Use(config.AuthMiddleware.RequireAuth())
	attachments.Use(config.PermissionMiddleware.RequirePermission("tickets", "write"))
	{
		attachments.DELETE("/:id",
			config.TicketHandler.DeleteAttachment)
	}
}
