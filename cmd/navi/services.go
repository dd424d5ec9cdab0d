package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	fs "github.com/sandevgo/netnavi/configs"
	"github.com/sandevgo/netnavi/internal/config"
	"github.com/sandevgo/netnavi/internal/providers/google"
	"github.com/sandevgo/netnavi/internal/providers/llm"
	"github.com/sandevgo/netnavi/internal/service/agent"
	"github.com/sandevgo/netnavi/internal/service/proactive"
	"github.com/sandevgo/netnavi/internal/service/session"
	"github.com/sandevgo/netnavi/internal/service/tools"
	"github.com/sandevgo/netnavi/internal/service/triage"
	"github.com/sandevgo/netnavi/internal/storage/sqlite"
	"github.com/sandevgo/netnavi/internal/transport/httpapi"
	"github.com/sandevgo/netnavi/pkg/log"
	"github.com/sandevgo/netnavi/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	geminiCfg := config.NewGeminiConfig(ctx)
	googleCfg := config.NewGoogleConfig(ctx)
	serverCfg := config.NewServerConfig(ctx)

	// 2. Storage
	db, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	turnsRepo := sqlite.NewTurnsRepo(db)
	memoriesRepo := sqlite.NewMemoriesRepo(db)

	// 3. Google API clients
	calendar := google.NewCalendarClient(googleCfg.CalendarBaseURL)
	mail := google.NewGmailClient(googleCfg.GmailBaseURL)

	// 4. Triage classifier (own model handle, no tools, JSON-only output)
	triageModel := llm.NewGemini(llm.GeminiConfig{
		BaseURL: geminiCfg.BaseURL,
		APIKey:  geminiCfg.APIKey,
		Model:   geminiCfg.Model,
	})
	analyzer := triage.NewAnalyzer(triageModel)

	// 5. Tool registry
	registry := tools.NewRegistry(
		tools.NewAddSchedule(calendar),
		tools.NewGetSchedules(calendar),
		tools.NewRemember(memoriesRepo),
		tools.NewCheckGmail(mail, analyzer),
	)

	// 6. Chat model with the persona and tool declarations
	chatModel := llm.NewGemini(llm.GeminiConfig{
		BaseURL:      geminiCfg.BaseURL,
		APIKey:       geminiCfg.APIKey,
		Model:        geminiCfg.Model,
		SystemPrompt: loadSystemPrompt(ctx, appCfg),
		Tools:        registry.Declarations(),
	})

	// 7. Agent
	ag := agent.NewAgent(appCfg, chatModel, registry, turnsRepo, memoriesRepo)

	// 8. Proactive schedule checker
	checker := proactive.NewChecker(appCfg, ag)
	if checker.Enabled() {
		services = append(services, checker)
	}

	// 9. HTTP transport
	sessions := session.NewStore(serverCfg.SessionTTL)
	server := httpapi.NewServer(serverCfg, *logger, ag, calendar, mail, analyzer, sessions)
	services = append(services, server)

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, error) {
	return sqlite.NewDB(ctx, cfg.GetDatabasePath())
}

// loadSystemPrompt prefers the user's customized persona in the runtime dir
// and falls back to the embedded default.
func loadSystemPrompt(ctx context.Context, cfg *config.AppConfig) string {
	if data, err := os.ReadFile(cfg.GetSystemPromptPath()); err == nil {
		return string(data)
	}

	data, err := fs.FS.ReadFile("SYSTEM.md")
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("no system prompt available")
		return ""
	}
	return string(data)
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
