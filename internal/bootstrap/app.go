package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "github.com/hareesh3232/Mock-test-interview/internal/auth"
	"github.com/hareesh3232/Mock-test-interview/internal/dashboard"
	"github.com/hareesh3232/Mock-test-interview/internal/interviews"
	"github.com/hareesh3232/Mock-test-interview/internal/jobs"
	"github.com/hareesh3232/Mock-test-interview/internal/llm"
	"github.com/hareesh3232/Mock-test-interview/internal/llm/gemini"
	"github.com/hareesh3232/Mock-test-interview/internal/queue"
	"github.com/hareesh3232/Mock-test-interview/internal/resumes"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/config"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/server"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/storage/db"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/storage/object"
	localstore "github.com/hareesh3232/Mock-test-interview/internal/shared/storage/object/local"
	s3store "github.com/hareesh3232/Mock-test-interview/internal/shared/storage/object/s3"
	"github.com/hareesh3232/Mock-test-interview/internal/users"
)

// App holds shared dependencies for the API server and the queue worker.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client
	LLM    llm.Client

	UsersRepo      users.Repo
	ResumesRepo    resumes.Repo
	JobsRepo       jobs.Repo
	InterviewsRepo interviews.Repo

	UsersService      *users.Service
	ResumesService    *resumes.Service
	JobsService       *jobs.Service
	InterviewsService *interviews.Service
	DashboardService  *dashboard.Service

	// ResumeProcessor lets the worker entrypoint override parsing for tests.
	ResumeProcessor ResumeProcessor

	UsersHandler     *users.Handler
	ResumesHandler   *resumes.Handler
	JobsHandler      *jobs.Handler
	InterviewHandler *interviews.Handler
	DashboardHandler *dashboard.Handler
	GoogleAuth       *googleauth.GoogleService
}

// ResumeProcessor runs the parse pipeline for one stored resume.
type ResumeProcessor interface {
	ProcessResume(ctx context.Context, resumeID string) error
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		UserHandler:      app.UsersHandler,
		GoogleAuth:       app.GoogleAuth,
		ResumeHandler:    app.ResumesHandler,
		JobHandler:       app.JobsHandler,
		InterviewHandler: app.InterviewHandler,
		DashboardHandler: app.DashboardHandler,
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

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("MTI_SQS_QUEUE_URL")) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "gemini":
		apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if apiKey == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: GEMINI_API_KEY empty; using fallback LLM outputs")
				return llm.FallbackClient{}, nil
			}
			return nil, fmt.Errorf("GEMINI_API_KEY is required")
		}
		return gemini.NewClient(apiKey, cfg.LLMModel)
	case "fallback", "mock":
		return llm.FallbackClient{}, nil
	case "placeholder":
		// Serves wiring smoke tests where every LLM call should fail loudly.
		return llm.PlaceholderClient{}, nil
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func buildJobSource(cfg config.Config) jobs.Source {
	if strings.TrimSpace(cfg.AdzunaAppID) != "" && strings.TrimSpace(cfg.AdzunaAppKey) != "" {
		source, err := jobs.NewAdzunaSource(cfg.AdzunaAppID, cfg.AdzunaAppKey)
		if err == nil {
			return source
		}
		log.Printf("bootstrap: adzuna source unavailable; using mock catalog: %v", err)
	}
	return jobs.MockSource{}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var (
		userRepo      users.Repo
		resumeRepo    resumes.Repo
		jobRepo       jobs.Repo
		interviewRepo interviews.Repo
	)

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		jobRepo = &jobs.PGRepo{DB: app.DB}
		interviewRepo = &interviews.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		jobRepo = jobs.NewMemoryRepo()
		interviewRepo = interviews.NewMemoryRepo()
	}

	llmClient, err := buildLLM(app.Config)
	if err != nil {
		return err
	}
	app.LLM = llmClient

	userSvc := users.NewService(userRepo)
	resumeSvc := &resumes.Service{
		Repo:  resumeRepo,
		Store: app.Store,
		LLM:   llmClient,
		Queue: app.Queue,
	}
	jobSvc := jobs.NewService(jobRepo, buildJobSource(app.Config))
	interviewSvc := &interviews.Service{
		Repo:       interviewRepo,
		ResumeRepo: resumeRepo,
		JobRepo:    jobRepo,
		LLM:        llmClient,
	}
	dashboardSvc := &dashboard.Service{
		Resumes:    resumeRepo,
		Interviews: interviewRepo,
		Jobs:       jobRepo,
	}

	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.UsersRepo = userRepo
	app.ResumesRepo = resumeRepo
	app.JobsRepo = jobRepo
	app.InterviewsRepo = interviewRepo
	app.UsersService = userSvc
	app.ResumesService = resumeSvc
	app.JobsService = jobSvc
	app.InterviewsService = interviewSvc
	app.DashboardService = dashboardSvc
	app.ResumeProcessor = resumeSvc
	app.UsersHandler = users.NewHandler(userSvc)
	app.ResumesHandler = resumes.NewHandler(resumeSvc)
	app.JobsHandler = jobs.NewHandler(jobSvc)
	app.InterviewHandler = interviews.NewHandler(interviewSvc)
	app.DashboardHandler = dashboard.NewHandler(dashboardSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}
