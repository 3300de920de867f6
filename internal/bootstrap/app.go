package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "cvtoaster-backend/internal/auth"
	"cvtoaster-backend/internal/insights"
	"cvtoaster-backend/internal/llm"
	"cvtoaster-backend/internal/llm/gemini"
	"cvtoaster-backend/internal/mail"
	"cvtoaster-backend/internal/otp"
	"cvtoaster-backend/internal/resumes"
	"cvtoaster-backend/internal/shared/config"
	"cvtoaster-backend/internal/shared/server"
	"cvtoaster-backend/internal/shared/storage/db"
	"cvtoaster-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	ResumesRepo resumes.Repo
	UsersRepo   users.Repo

	ResumesService  *resumes.Service
	UsersService    *users.Service
	InsightsService *insights.Service

	ResumesHandler  *resumes.Handler
	UsersHandler    *users.Handler
	InsightsHandler *insights.Handler
	GoogleAuth      *googleauth.GoogleService

	Mailer    mail.Sender
	Generator llm.Generator
	Embedder  llm.Embedder
}

// Build wires repositories, services, handlers and the router from config.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}

	if sqlDB != nil {
		app.ResumesRepo = &resumes.PGRepo{DB: sqlDB}
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
	} else {
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.Mailer = buildMailer(cfg)
	app.Generator, app.Embedder = buildLLM(ctx, cfg)

	app.ResumesService = &resumes.Service{Repo: app.ResumesRepo}
	app.UsersService = &users.Service{
		Repo:   app.UsersRepo,
		Codes:  otp.NewStore(),
		Mailer: app.Mailer,
	}
	app.InsightsService = &insights.Service{
		Generator:    app.Generator,
		Embedder:     app.Embedder,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		TopK:         cfg.RetrievalTopK,
	}

	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.InsightsHandler = insights.NewHandler(app.InsightsService, app.ResumesService)
	app.GoogleAuth = googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		app.UsersService,
	)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		UserHandler:     app.UsersHandler,
		ResumeHandler:   app.ResumesHandler,
		InsightsHandler: app.InsightsHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func buildMailer(cfg config.Config) mail.Sender {
	if strings.TrimSpace(cfg.SMTPHost) == "" {
		log.Printf("bootstrap: SMTP not configured; mail will be logged only")
		return mail.LogSender{}
	}
	return mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Generator, llm.Embedder) {
	if strings.TrimSpace(cfg.GoogleAPIKey) == "" {
		log.Printf("bootstrap: GOOGLE_API_KEY empty; generation endpoints disabled")
		return llm.PlaceholderGenerator{}, llm.PlaceholderEmbedder{}
	}
	client, err := gemini.NewClient(ctx, cfg.GoogleAPIKey, cfg.GenerationModel, cfg.EmbeddingModel)
	if err != nil {
		log.Printf("bootstrap: gemini client init failed; generation endpoints disabled: %v", err)
		return llm.PlaceholderGenerator{}, llm.PlaceholderEmbedder{}
	}
	return client, client
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
