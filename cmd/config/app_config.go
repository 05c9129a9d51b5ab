package config

import (
	"backstube/internal/api/handlers"
	"backstube/internal/api/routes"
	"backstube/internal/middleware"
	"backstube/internal/utils"
	"backstube/internal/utils/mailing"
	"backstube/pkg/backstube"
	"backstube/pkg/database"
	"backstube/pkg/jwt"
	"backstube/pkg/recipe"
	"backstube/pkg/user"
	"backstube/pkg/webhook"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

type AppOptions struct {
	JWTSecret      string
	WebhookSecret  string
	AcquireTimeout time.Duration
	Puller         webhook.Puller
	Notifier       webhook.Notifier
	AccessLog      io.Writer
}

// LoadAppOptions builds the options from configuration. The webhook pulls
// DEPLOY_DIR and mails DEPLOY_NOTIFY_EMAIL when that is set.
func LoadAppOptions() (AppOptions, error) {
	puller, err := webhook.NewGitPuller(utils.GetConfig("DEPLOY_DIR"), 2*time.Minute)
	if err != nil {
		return AppOptions{}, err
	}

	var notifier webhook.Notifier
	if to := utils.GetConfig("DEPLOY_NOTIFY_EMAIL"); to != "" {
		notifier = func(subject, body string) error {
			return mailing.SendMail(to, subject, body)
		}
	}

	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return AppOptions{}, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return AppOptions{}, err
	}

	return AppOptions{
		JWTSecret:      utils.GetConfig("JWT_SECRET"),
		WebhookSecret:  utils.GetConfig("W_SECRET"),
		AcquireTimeout: time.Duration(utils.GetConfigInt("DB_CONNECT_TIMEOUT", 10)) * time.Second,
		Puller:         puller,
		Notifier:       notifier,
		AccessLog:      file,
	}, nil
}

// Close releases the access log when it is a file.
func (o AppOptions) Close() error {
	if closer, ok := o.AccessLog.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func NewApp(db *gorm.DB, opts AppOptions) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			TimeZone:   "Europe/Berlin",
			Output:     opts.AccessLog,
		}))
	}

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// Gateway
	gateway := database.NewGateway(db, opts.AcquireTimeout)

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(gateway)
	backstubeRepository := backstube.NewBackstubeRepository(gateway)
	deploymentRepository := webhook.NewDeploymentRepository(db)

	// Service
	jwtService := jwt.NewJWTService(opts.JWTSecret)
	userService := user.NewUserService(userRepository, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository)
	backstubeService := backstube.NewBackstubeService(backstubeRepository, recipeService)
	deployService := webhook.NewDeployService(opts.WebhookSecret, opts.Puller, deploymentRepository, opts.Notifier)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	backstubeHandler := handlers.NewBackstubeHandler(backstubeService, validator)
	webhookHandler := handlers.NewWebhookHandler(deployService)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		RecipeHandler:    recipeHandler,
		BackstubeHandler: backstubeHandler,
		WebhookHandler:   webhookHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
