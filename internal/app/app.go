package app

import (
	"context"
	"log/slog"
	"os"

	appapi "videomind/internal/app/api"
	"videomind/internal/app/api/gemini"
	openaiclient "videomind/internal/app/api/openai"
	"videomind/internal/app/api/openai/chat"
	"videomind/internal/app/api/openai/vision"
	"videomind/internal/app/api/openai/whisper"
	"videomind/internal/app/errors"
	"videomind/internal/app/frames"
	"videomind/internal/app/health"
	"videomind/internal/app/media"
	"videomind/internal/app/pipeline"
	"videomind/internal/app/repository"
	"videomind/internal/app/repository/pg"
	"videomind/internal/app/repository/sqlite"
	"videomind/internal/app/storage"
	"videomind/internal/config"

	"videomind/internal/api/server"
	apiroutes "videomind/internal/api/v1/routes"
	"videomind/internal/api/v1/services"
)

// Application bundles the long-lived components of a running instance.
type Application struct {
	Config     *config.Config
	Logger     *slog.Logger
	DAO        repository.JobDAO
	Dispatcher *pipeline.Dispatcher
	Monitor    *health.Monitor
	Server     *server.Server
}

// Close releases the store connection.
func (a *Application) Close() error {
	return a.DAO.Close()
}

// ProvideLogger builds the process-wide structured logger.
func ProvideLogger(cfg *config.Config) *slog.Logger {
	if cfg.Environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// ProvideJobDAO opens the store selected by DB_DRIVER.
func ProvideJobDAO(cfg *config.Config) (repository.JobDAO, error) {
	switch cfg.DBDriver {
	case "postgres":
		return pg.NewJobDB(cfg.PostgresDSN)
	case "sqlite", "":
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create data directory")
		}
		return sqlite.NewJobDB(cfg.DatabasePath())
	default:
		return nil, errors.Newf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

// ProvideDownloader builds the acquisition chain. yt-dlp is tried first;
// page scraping covers direct media links and og:video embeds.
func ProvideDownloader() media.Downloader {
	return media.NewYtDlpDownloader()
}

// ProvideTranscriber returns the speech-to-text capability.
func ProvideTranscriber() appapi.Transcriber {
	return whisper.NewRemoteTranscriber(openaiclient.GetClient())
}

// ProvideSummarizer returns the transcript summarization capability.
func ProvideSummarizer() appapi.Summarizer {
	return chat.NewChatSummarizer(openaiclient.GetClient())
}

// ProvideAnswerer returns the question answering capability.
func ProvideAnswerer() appapi.Answerer {
	return chat.NewChatAnswerer(openaiclient.GetClient())
}

// ProvideCaptioner selects the frame description backend via
// CAPTION_PROVIDER.
func ProvideCaptioner(ctx context.Context, cfg *config.Config) (frames.Captioner, error) {
	if cfg.CaptionProvider == "gemini" {
		return gemini.NewFrameCaptioner(ctx, cfg.GeminiKey)
	}
	return vision.NewFrameCaptioner(openaiclient.GetClient()), nil
}

// ProvideFrameStore publishes frames to MinIO when an endpoint is
// configured, otherwise keeps local paths.
func ProvideFrameStore(ctx context.Context, cfg *config.Config) (storage.FrameStore, error) {
	if cfg.MinioEndpoint == "" {
		return storage.NewLocalFrameStore(), nil
	}
	return storage.NewMinioFrameStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
}

// ProvideOrchestrator assembles the processing pipeline.
func ProvideOrchestrator(
	cfg *config.Config,
	dao repository.JobDAO,
	downloader media.Downloader,
	transcriber appapi.Transcriber,
	summarizer appapi.Summarizer,
	captioner frames.Captioner,
	frameStore storage.FrameStore,
	logger *slog.Logger,
) *pipeline.Orchestrator {
	return pipeline.NewOrchestrator(pipeline.OrchestratorConfig{
		DAO:             dao,
		Downloader:      downloader,
		Transcriber:     transcriber,
		Summarizer:      summarizer,
		Captioner:       captioner,
		FrameStore:      frameStore,
		Logger:          logger,
		TempRoot:        cfg.TempDir(),
		FramesRoot:      cfg.FramesDir(),
		FrameInterval:   cfg.FrameInterval,
		DedupeThreshold: cfg.DedupeThreshold,
	})
}

// ProvideDispatcher sizes the worker pool from configuration.
func ProvideDispatcher(cfg *config.Config, orchestrator *pipeline.Orchestrator, logger *slog.Logger) *pipeline.Dispatcher {
	return pipeline.NewDispatcher(orchestrator, cfg.Workers, cfg.QueueSize, logger)
}

// ProvideMonitor builds the stuck-job and resource monitor.
func ProvideMonitor(cfg *config.Config, dao repository.JobDAO) *health.Monitor {
	return health.NewMonitor(dao, cfg.StaleAfter, cfg.DataDir)
}

// ProvideServer builds the http surface over the services.
func ProvideServer(
	cfg *config.Config,
	dao repository.JobDAO,
	dispatcher *pipeline.Dispatcher,
	answerer appapi.Answerer,
	monitor *health.Monitor,
	logger *slog.Logger,
) *server.Server {
	analysisService := services.NewAnalysisService(dao, dispatcher, answerer)
	opsService := services.NewOpsService(monitor)
	return server.New(cfg, &apiroutes.ServiceContainer{
		Analysis: analysisService,
		Ops:      opsService,
	}, logger)
}
