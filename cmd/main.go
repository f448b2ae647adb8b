package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mehmetcc/folio/internal/about"
	"github.com/mehmetcc/folio/internal/admin"
	"github.com/mehmetcc/folio/internal/auth"
	"github.com/mehmetcc/folio/internal/blog"
	"github.com/mehmetcc/folio/internal/certification"
	"github.com/mehmetcc/folio/internal/config"
	"github.com/mehmetcc/folio/internal/contact"
	"github.com/mehmetcc/folio/internal/database"
	"github.com/mehmetcc/folio/internal/experience"
	"github.com/mehmetcc/folio/internal/gate"
	"github.com/mehmetcc/folio/internal/person"
	"github.com/mehmetcc/folio/internal/project"
	"github.com/mehmetcc/folio/internal/server"
	"github.com/mehmetcc/folio/internal/skill"
	"github.com/mehmetcc/folio/internal/token"
	"github.com/mehmetcc/folio/internal/web"
	"go.uber.org/zap"
)

func main() {
	// init logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	// load config, .env is optional
	cfg, err := config.LoadConfig(logger, ".env")
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// load database
	db, err := database.Init(ctx, cfg.DbConfig)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// run migrations
	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// auth
	codec := token.NewCodec(logger, cfg.JWTConfig)
	g := gate.New(gate.NewResolver(codec), logger)

	// repositories
	personRepo := person.NewPersonRepo(db, logger)
	projectRepo := project.NewProjectRepo(db, logger)
	blogRepo := blog.NewBlogRepo(db, logger)
	certRepo := certification.NewCertificationRepo(db, logger)
	messageRepo := contact.NewMessageRepo(db, logger)

	// services
	authService := auth.NewAuthenticationService(personRepo, codec, cfg.JWTConfig, cfg.AdminConfig, logger)
	adminService := admin.NewAdminService(admin.Counters{
		Projects:        projectRepo,
		Blogs:           blogRepo,
		Certifications:  certRepo,
		ContactMessages: messageRepo,
		Users:           personRepo,
	}, personRepo, logger)

	router := server.NewRouter(cfg.AppConfig, server.Handlers{
		Auth:            auth.NewAuthenticationHandler(authService, g, logger),
		Admin:           admin.NewAdminHandler(adminService, g, logger),
		Projects:        project.NewProjectHandler(projectRepo, g, logger),
		Blogs:           blog.NewBlogHandler(blogRepo, g, logger),
		Certifications:  certification.NewCertificationHandler(certRepo, g, logger),
		About:           about.NewAboutHandler(about.NewAboutRepo(db, logger), g, logger),
		TechnicalSkills: skill.NewSkillHandler(skill.NewSkillRepo(db, logger), g, logger),
		Experiences:     experience.NewExperienceHandler(experience.NewExperienceRepo(db, logger), g, logger),
		Contact:         contact.NewContactHandler(messageRepo, g, logger),
		Web:             web.NewWebHandler(cfg.AppConfig, logger),
	}, logger)

	logger.Info("application started", zap.String("port", cfg.AppConfig.Port))
	if err := server.New(cfg.AppConfig, router, logger).Run(ctx); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
}
