package main

import (
	"app/internal/config"
	"app/internal/cron"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infrarepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/token"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// .envはローカル開発用。無ければ環境変数だけで動く
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err := conn.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.RevokedToken{},
		&model.TodoItem{},
		&model.Achievement{},
		&model.FuturePlan{},
	); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	userRepo := infrarepo.NewUserGormRepository(conn)
	blocklistRepo := infrarepo.NewRevokedTokenRepository(conn)
	todoRepo := infrarepo.NewTodoGormRepository(conn)
	achievementRepo := infrarepo.NewAchievementGormRepository(conn)
	planRepo := infrarepo.NewFuturePlanGormRepository(conn)
	profileRepo := infrarepo.NewProfileGormRepository(conn)

	tm := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	authUC := usecase.NewAuthUsecase(userRepo, blocklistRepo, tm, validator.NewAuthValidator())
	todoUC := usecase.NewTodoUsecase(todoRepo)
	achievementUC := usecase.NewAchievementUsecase(achievementRepo)
	planUC := usecase.NewPlanUsecase(planRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo, userRepo)

	e := server.New(cfg)
	server.RegisterRoutes(e, server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Todos:        handler.NewTodoHandler(todoUC),
		Achievements: handler.NewAchievementHandler(achievementUC),
		Plans:        handler.NewPlanHandler(planUC),
		Profile:      handler.NewProfileHandler(profileUC),
	}, tm, blocklistRepo)

	// 失効台帳の日次パージ
	scheduler := cron.StartBlocklistCleanup(blocklistRepo, cfg.RefreshTokenTTL, log)
	defer scheduler.Stop()

	log.WithField("port", cfg.Port).Info("starting server")
	if err := server.Start(e, cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
