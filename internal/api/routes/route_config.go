package routes

import (
	"backstube/internal/api/handlers"
	"backstube/internal/middleware"
	"backstube/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	RecipeHandler    handlers.RecipeHandler
	BackstubeHandler handlers.BackstubeHandler
	WebhookHandler   handlers.WebhookHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.Backstube()
	c.Deployment()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Recipes() {
	c.App.Get("/zutaten", c.RecipeHandler.GetIngredients)
	c.App.Post("/rezepte", c.RecipeHandler.MatchRecipes)
}

func (c *Config) Backstube() {
	backstube := c.App.Group("/backstube", c.Middleware.AuthMiddleware(c.JWTService))
	backstube.Get("", c.BackstubeHandler.GetBackstube)
	backstube.Post("/toggle", c.BackstubeHandler.Toggle)
}

func (c *Config) Deployment() {
	c.App.Post("/update_server", c.WebhookHandler.UpdateServer)
	c.App.Get("/api/v1/deployments", c.Middleware.AuthMiddleware(c.JWTService), c.WebhookHandler.GetDeployments)
}
