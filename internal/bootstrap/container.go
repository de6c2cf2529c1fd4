package bootstrap

import (
	"log"

	"ai-foundry-be/internal/config"
	"ai-foundry-be/internal/controller"
	"ai-foundry-be/internal/pkg/logger"
	"ai-foundry-be/internal/pkg/serverutils"
	"ai-foundry-be/internal/pkg/storage"
	"ai-foundry-be/internal/repository/unitofwork"
	"ai-foundry-be/internal/service"
	"ai-foundry-be/pkg/embedding"
	"ai-foundry-be/pkg/extractor"
	"ai-foundry-be/pkg/llm"
	"ai-foundry-be/pkg/llm/ollama"
	"ai-foundry-be/pkg/rag"
	"ai-foundry-be/pkg/searchindex"

	pktNats "ai-foundry-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController
	SearchController   controller.ISearchController

	// Background Services (Exposed for main.go to run)
	ProcessorService service.IProcessorService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (optional; services tolerate a nil publisher)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 3. AI Providers (each degrades to a disabled stand-in when unconfigured)
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.EmbeddingBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewDisabledProvider()
		log.Printf("[INFO] Embedding Provider not configured (semantic search degraded)")
	}

	var llmProvider llm.LLMProvider
	if cfg.Ai.LLMProvider == "ollama" {
		llmProvider = ollama.NewOllamaProvider(cfg.Ai.LLMBaseURL, cfg.Ai.LLMModel)
		log.Printf("[INFO] Using LLM Provider: OLLAMA (%s)", cfg.Ai.LLMModel)
	} else {
		llmProvider = llm.NewDisabledProvider()
		log.Printf("[INFO] LLM Provider not configured (chat uses fallback responses)")
	}

	var analyzer extractor.DocumentAnalyzer
	if cfg.Ai.AnalyzerEndpoint != "" {
		analyzer = extractor.NewHTTPAnalyzer(cfg.Ai.AnalyzerEndpoint, cfg.Ai.AnalyzerAPIKey)
		log.Printf("[INFO] Using Document Analyzer: %s", cfg.Ai.AnalyzerEndpoint)
	} else {
		analyzer = extractor.NewDisabledAnalyzer()
	}
	textExtractor := extractor.NewTextExtractor(analyzer)

	var index searchindex.Index
	if cfg.Ai.SearchIndexOn {
		index = searchindex.NewPgVectorIndex(db, embeddingProvider)
	} else {
		index = searchindex.NewDisabled()
		log.Printf("[INFO] Search index disabled")
	}

	orchestrator := rag.NewOrchestrator(index, llmProvider, cfg.Ai.RetrievalLimit)

	// 4. Storage
	fileStorage := storage.NewLocalStorage(cfg.Storage.UploadDir)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.ProcessTopic, pubSub)
	processorService := service.NewProcessorService(
		pubSub,
		cfg.App.ProcessTopic,
		uowFactory,
		textExtractor,
		index,
		fileStorage,
		natsPub,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, cfg.JWT.Secret, cfg.JWT.ExpirationHours)
	documentService := service.NewDocumentService(
		uowFactory,
		fileStorage,
		index,
		publisherService,
		sysLogger,
	)
	chatService := service.NewChatService(
		uowFactory,
		orchestrator,
		natsPub,
		sysLogger,
	)
	searchService := service.NewSearchService(uowFactory, index, sysLogger)

	// 6. Controllers
	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.JWT.Secret)

	return &Container{
		AuthController:     controller.NewAuthController(authService, jwtMiddleware),
		DocumentController: controller.NewDocumentController(documentService, cfg.Storage, jwtMiddleware),
		ChatController:     controller.NewChatController(chatService, jwtMiddleware),
		SearchController:   controller.NewSearchController(searchService, jwtMiddleware),
		ProcessorService:   processorService,
		Logger:             sysLogger,
	}
}
