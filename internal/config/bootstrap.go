package config

import (
	"context"
	"time"

	"github.com/fahrizm/soalgen-be/internal/delivery/http/handler"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/middleware"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/repository"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/route"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/usecase"
	"github.com/fahrizm/soalgen-be/internal/pkg/document"
	"github.com/fahrizm/soalgen-be/internal/pkg/llm"
	"github.com/fahrizm/soalgen-be/internal/pkg/stream"
	"github.com/fahrizm/soalgen-be/internal/pkg/validate"
	"github.com/fahrizm/soalgen-be/internal/pkg/vecindex"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator

	// Ctx bounds background extraction work; cancel it to stop running
	// sessions between pages.
	Ctx context.Context
}

func Bootstrap(config *BootstrapConfig) {

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	gemini, err := llm.NewGeminiClient(
		config.Ctx,
		config.Config.GetString("llm.gemini.api_key"),
		config.Config.GetString("llm.gemini.model"),
		config.Config.GetString("llm.gemini.prompt_template"),
	)
	if err != nil {
		config.Log.Fatalf("Failed to create gemini client: %v", err)
	}

	embedder := llm.NewOpenAIEmbedder(
		config.Config.GetString("llm.embedding.api_key"),
		config.Config.GetString("llm.embedding.model"),
		config.Config.GetString("llm.embedding.base_url"),
	)

	pinecone, err := vecindex.NewClient(config.Log, vecindex.Config{
		APIKey: config.Config.GetString("vector_index.api_key"),
	})
	if err != nil {
		config.Log.Fatalf("Failed to create vector index client: %v", err)
	}
	bankIndex, err := vecindex.NewQuestionBankIndex(config.Log, config.Config, pinecone)
	if err != nil {
		config.Log.Fatalf("Failed to resolve vector index: %v", err)
	}

	pages := document.NewPDFSource(config.Config.GetString("storage.upload_dir"))
	streams := stream.NewRegistry(config.Log)

	sessionRepo := repository.NewSessionRepository(config.DB)
	bankRepo := repository.NewQuestionBankRepository(config.DB)

	extractionUsecase := usecase.NewExtractionUsecase(usecase.ExtractionConfig{
		Log:          config.Log,
		Repo:         sessionRepo,
		Pages:        pages,
		Extractor:    gemini,
		Streams:      streams,
		BaseCtx:      config.Ctx,
		StreamLinger: time.Duration(config.Config.GetInt("stream.linger_seconds")) * time.Second,
	})

	bankUsecase := usecase.NewQuestionBankUsecase(usecase.QuestionBankConfig{
		Log:         config.Log,
		SessionRepo: sessionRepo,
		BankRepo:    bankRepo,
		Index:       bankIndex,
		Embedder:    embedder,
	})

	paperUsecase := usecase.NewPaperUsecase(usecase.PaperConfig{
		Log:                  config.Log,
		Repo:                 bankRepo,
		Index:                bankIndex,
		Embedder:             embedder,
		Evaluator:            usecase.NewConvergenceEvaluator(),
		ConvergenceThreshold: config.Config.GetFloat64("paper.convergence_threshold"),
		QueryLimit:           config.Config.GetInt("paper.query_limit"),
		DefaultMaxIterations: config.Config.GetInt("paper.max_iterations"),
	})

	sessionHandler := handler.NewSessionHandler(config.Validator, config.Log, extractionUsecase, streams)
	bankHandler := handler.NewBankHandler(config.Validator, config.Log, bankUsecase)
	paperHandler := handler.NewPaperHandler(config.Validator, config.Log, paperUsecase)

	route.Setup(&route.RouteConfig{
		Api:            config.Api,
		Middleware:     mid,
		SessionHandler: sessionHandler,
		BankHandler:    bankHandler,
		PaperHandler:   paperHandler,
	})

}
