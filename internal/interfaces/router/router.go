package router

import (
	adminsvc "estates-backend/internal/application/admins"
	projsvc "estates-backend/internal/application/projects"
	schemesvc "estates-backend/internal/application/schemes"
	"estates-backend/internal/config"
	"estates-backend/internal/database"
	adminhandler "estates-backend/internal/interfaces/handlers/admins"
	healthhandler "estates-backend/internal/interfaces/handlers/health"
	projhandler "estates-backend/internal/interfaces/handlers/projects"
	schemehandler "estates-backend/internal/interfaces/handlers/schemes"
	"estates-backend/internal/middleware"
	"estates-backend/internal/tokens"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all middleware and routes. The DB and
// Redis handles are returned so the caller can verify connectivity on boot.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}

	healthHandlers := &healthhandler.Handlers{DB: &gormDBPinger{db: db}, Rdb: rdb}
	app.Get("/health/json", healthHandlers.JSON)

	if db == nil || rdb == nil {
		// Partial config (e.g. tests building their own apps): routes that
		// need DB or Redis are not mounted.
		return app, db, rdb, nil
	}

	tokenStore := tokens.NewStore(rdb, cfg.TokenTTL)
	requireAuth := middleware.RequireAuth(tokenStore)

	adminService := &adminsvc.Service{DB: db}
	adminHandlers := &adminhandler.Handlers{Service: adminService, Tokens: tokenStore}
	adminGroup := app.Group("/admin")
	adminGroup.Post("/login", adminHandlers.Login)
	adminGroup.Get("/profile/me", requireAuth, adminHandlers.Profile)
	adminGroup.Get("/dashboard", requireAuth, adminHandlers.Dashboard)
	adminGroup.Post("/", requireAuth, adminHandlers.CreateAdmin)
	adminGroup.Get("/", requireAuth, adminHandlers.ListAdmins)
	adminGroup.Put("/:id", requireAuth, adminHandlers.UpdateAdmin)
	adminGroup.Delete("/:id", requireAuth, adminHandlers.DeleteAdmin)

	projectService := &projsvc.Service{DB: db}
	projectHandlers := &projhandler.Handlers{Service: projectService}
	projectGroup := app.Group("/projects", requireAuth)
	projectGroup.Get("/options", projectHandlers.ProjectOptions)
	projectGroup.Get("/search/:query", projectHandlers.SearchProjects)
	projectGroup.Get("/", projectHandlers.ListProjects)
	projectGroup.Post("/", projectHandlers.CreateProject)
	projectGroup.Get("/:id", projectHandlers.GetProject)
	projectGroup.Put("/:id", projectHandlers.UpdateProject)
	projectGroup.Delete("/:id", projectHandlers.DeleteProject)

	schemeService := &schemesvc.Service{DB: db}
	schemeHandlers := &schemehandler.Handlers{Service: schemeService}
	schemeGroup := app.Group("/investment-schemes", requireAuth)
	schemeGroup.Get("/project/:project_id", schemeHandlers.ListProjectSchemes)
	schemeGroup.Get("/", schemeHandlers.ListSchemes)
	schemeGroup.Post("/", schemeHandlers.CreateScheme)
	schemeGroup.Put("/:id", schemeHandlers.UpdateScheme)
	schemeGroup.Delete("/:id", schemeHandlers.DeleteScheme)

	return app, db, rdb, nil
}
