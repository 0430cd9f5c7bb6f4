// @title           Course Material Retrieval API
// @version         1.0
// @description     Asynchronous course material ingestion and semantic retrieval for the LMS
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/campuslms/RetrievalAPI/internal/config"
	"github.com/campuslms/RetrievalAPI/internal/data/store"
	jobmodel "github.com/campuslms/RetrievalAPI/internal/domain/jobModel"
	"github.com/campuslms/RetrievalAPI/internal/handlers"
	"github.com/campuslms/RetrievalAPI/internal/job"
	"github.com/campuslms/RetrievalAPI/internal/retrieval"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/embedding"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/embedding/googleEmbedding"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/embedding/openaiEmbedding"
	retrievalstore "github.com/campuslms/RetrievalAPI/internal/retrieval/store"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/store/memory"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/store/postgres"
	"github.com/campuslms/RetrievalAPI/internal/server"
	"github.com/campuslms/RetrievalAPI/internal/worker"
	"github.com/campuslms/RetrievalAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	if redisJobStore := store.GetRedisJobStore(serviceContext); redisJobStore != nil {
		serviceConfig.JobStore = redisJobStore
	} else {
		logger.Error("Redis job store is offline, job status will not survive restarts")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
	}
	service := job.InitJobService(serviceConfig)

	//segments live in postgres; the in-memory store keeps a dev machine
	//usable without one but loses everything on restart
	var embeddingStore retrievalstore.EmbeddingStore
	if pgStore := postgres.Connect(serviceContext, config.PostgresDSN); pgStore != nil {
		embeddingStore = pgStore
	} else {
		logger.Error("Postgres is offline, segments will not survive restarts")
		embeddingStore = memory.InitInMemoryStore()
	}

	embedder := selectEmbedder(serviceContext, logger)
	if embedder == nil {
		logger.Error("Embedding provider failed to initialize. Shutting down.")
		return
	}

	retrievalService := retrieval.NewService(embeddingStore, embedder)

	handlers.InitJobHandler(service, retrievalService)

	//init worker pool
	worker.InitServices(service, retrievalService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

// The provider is pinned for the lifetime of the store: vectors from
// different encoders are not comparable, so swapping providers over an
// existing store silently breaks ranking. Purge and re-ingest instead.
func selectEmbedder(ctx context.Context, logger *logger_i.Logger) embedding.Embedder {
	switch config.EmbeddingProvider {
	case "openai":
		logger.Info("Using OpenAI embedding provider", "model", config.OpenAIEmbeddingModel)
		return openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, config.OpenAIAPIKey, config.OpenAIBaseURL)
	case "google":
		logger.Info("Using Google embedding provider", "model", config.GoogleEmbeddingModel)
		return googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleEmbeddingAPIKey)
	default:
		logger.Error("Unknown embedding provider", "provider", config.EmbeddingProvider)
		return nil
	}
}
