package routes

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/onurcolak/termii-gateway/environments"
	"github.com/onurcolak/termii-gateway/handlers"
	"github.com/onurcolak/termii-gateway/internal/middlewares"
)

// RegisterRoutes registers all API routes with middleware
func RegisterRoutes(
	e *echo.Echo,
	healthHandler *handlers.HealthHandler,
	termiiHandler *handlers.TermiiHandler,
	dispatchHandler *handlers.DispatchHandler,
	monitorHandler *handlers.MonitorHandler,
	cfg *environments.Config,
) {
	e.GET("/health", healthHandler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Every v1 route sits behind the gateway key
	v1 := e.Group("/api/v1", middlewares.APIKeyAuth(cfg.Auth.GatewayAPIKey))

	// Insights
	v1.GET("/balance", termiiHandler.GetBalance)
	v1.GET("/numbers/status", termiiHandler.CheckNumberStatus)
	v1.GET("/numbers/search", termiiHandler.SearchNumber)
	v1.GET("/reports", termiiHandler.MessageReports)

	// Messaging
	v1.POST("/messages", termiiHandler.SendMessage)
	v1.POST("/messages/bulk", termiiHandler.SendBulkMessage)

	// Sender IDs
	v1.GET("/sender-ids", termiiHandler.FetchSenderIDs)
	v1.POST("/sender-ids", termiiHandler.RequestSenderID)

	// Phonebooks and campaigns
	v1.GET("/phonebooks", termiiHandler.FetchPhoneBooks)
	v1.POST("/phonebooks", termiiHandler.CreatePhoneBook)
	v1.GET("/phonebooks/:id/contacts", termiiHandler.FetchContacts)
	v1.POST("/phonebooks/:id/contacts", termiiHandler.AddContact)
	v1.GET("/campaigns", termiiHandler.FetchCampaigns)

	// Tokens
	tokens := v1.Group("/tokens")
	tokens.POST("/send", termiiHandler.SendToken)
	tokens.POST("/voice", termiiHandler.VoiceToken)
	tokens.POST("/voice-call", termiiHandler.VoiceCall)
	tokens.POST("/email", termiiHandler.EmailToken)
	tokens.POST("/in-app", termiiHandler.InAppToken)
	tokens.POST("/verify", termiiHandler.VerifyToken)

	// Dispatch log
	v1.GET("/dispatches", dispatchHandler.ListDispatches)
	v1.GET("/dispatches/stats", dispatchHandler.GetStats)

	// Balance monitor
	monitor := v1.Group("/monitor")
	monitor.POST("/start", monitorHandler.StartMonitor)
	monitor.POST("/stop", monitorHandler.StopMonitor)
	monitor.GET("/status", monitorHandler.GetMonitorStatus)
	monitor.GET("/snapshot", monitorHandler.GetLatestSnapshot)
}
