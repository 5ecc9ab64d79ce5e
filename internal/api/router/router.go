package router

import (
	"campus_lost_found/internal/api/handlers"
	"campus_lost_found/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Handlers 集合所有 http handler
type Handlers struct {
	Member  *handlers.MemberHandler
	Item    *handlers.ItemHandler
	Message *handlers.MessageHandler
	Session middlewares.SessionChecker
}

// RegisterRoutes 注册所有路由
// @title Campus Lost & Found API
// @version 1.0
// @description API documentation for Campus Lost & Found
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)

	auth := []fiber.Handler{middlewares.JWTMiddleware()}
	if h.Session != nil {
		auth = append(auth, middlewares.SessionMiddleware(h.Session))
	}
	protected := func(next fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, auth...), next)
	}

	memberRoutes := app.Group("/member")
	memberRoutes.Post("/register", h.Member.Register)
	memberRoutes.Post("/login", h.Member.Login)
	memberRoutes.Get("/find", h.Member.FindByEmail)
	memberRoutes.Post("/logout", protected(h.Member.Logout)...)
	memberRoutes.Get("/me", protected(h.Member.Me)...)

	itemRoutes := app.Group("/items")
	itemRoutes.Get("/", h.Item.List)
	itemRoutes.Get("/recent", h.Item.Recent)
	itemRoutes.Get("/stories", h.Item.Stories)
	itemRoutes.Get("/stats", h.Item.Stats)
	itemRoutes.Get("/mine", protected(h.Item.Mine)...)
	itemRoutes.Post("/", protected(h.Item.Create)...)
	itemRoutes.Post("/images", protected(h.Item.UploadImage)...)
	itemRoutes.Post("/:id/resolve", protected(h.Item.Resolve)...)
	itemRoutes.Get("/:id", h.Item.Get)

	messageRoutes := app.Group("/messages", auth...)
	messageRoutes.Get("/conversations", h.Message.Conversations)
	messageRoutes.Get("/thread/:otherUserID", h.Message.Thread)
	messageRoutes.Post("/", h.Message.Send)
	messageRoutes.Post("/read", h.Message.MarkRead)
	messageRoutes.Get("/unread", h.Message.Unread)

	app.Get("/ws", append(protected(h.Message.UpgradeCheck), h.Message.Live())...)
}
