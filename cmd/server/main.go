// Package main 是应用程序的入口点。
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"doc-intel-go/internal/config"
	"doc-intel-go/internal/handler"
	"doc-intel-go/internal/middleware"
	"doc-intel-go/internal/pipeline"
	"doc-intel-go/internal/repository"
	"doc-intel-go/internal/retrieval"
	"doc-intel-go/internal/service"
	"doc-intel-go/pkg/database"
	"doc-intel-go/pkg/es"
	"doc-intel-go/pkg/kafka"
	"doc-intel-go/pkg/log"
	"doc-intel-go/pkg/storage"
)

func main() {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "./configs/config.yaml"
	}
	configPath := flag.String("config", defaultPath, "path to config.yaml")
	flag.Parse()

	// 1. 初始化配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	// 3. 初始化数据库。连接失败时继续启动，请求会得到 "Database not available"
	db, err := database.InitMySQL(cfg.Database.MySQL.DSN)
	if err != nil {
		log.Error("MySQL 初始化失败，存储不可用", err)
		db = nil
	} else if cfg.Database.MySQL.AutoMigrate {
		if err := repository.Migrate(db); err != nil {
			log.Fatal("数据库迁移失败", err)
		}
	}

	// 4. 可选依赖
	var rdb *redis.Client
	if cfg.Database.Redis.Enabled {
		if rdb, err = database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB); err != nil {
			log.Error("Redis 初始化失败", err)
		}
	}

	var archive *storage.Archive
	if cfg.MinIO.Enabled {
		if archive, err = storage.InitMinIO(rootCtx, cfg.MinIO); err != nil {
			log.Error("MinIO 初始化失败", err)
		}
	}

	var esClient *es.Client
	if cfg.Elasticsearch.Enabled {
		if esClient, err = es.InitES(cfg.Elasticsearch); err != nil {
			log.Errorf("es 初始化失败 %s", err)
		}
	}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka)
		defer producer.Close()
	}

	// 5. 初始化 Repository
	docRepo := repository.NewDocumentRepository(db)
	chunkRepo := repository.NewChunkRepository(db)

	// 6. 初始化 Service (依赖注入)。可选依赖未启用时必须传入 nil 接口
	var (
		fileArchive service.FileArchive
		publisher   service.EventPublisher
		fulltext    service.FulltextSearcher
	)
	if archive != nil {
		fileArchive = archive
	}
	if producer != nil {
		publisher = producer
	}
	if esClient != nil {
		fulltext = esClient
	}

	indexer := retrieval.NewIndexer(chunkRepo, cfg.Retrieval.ChunkSize)
	retriever := retrieval.NewRetriever(chunkRepo, retrieval.Options{
		ScanLimit:       cfg.Retrieval.ScanLimit,
		SnippetMaxChars: cfg.Retrieval.SnippetMaxChars,
		AnswerMaxChars:  cfg.Retrieval.AnswerMaxChars,
	})
	ingestService := service.NewIngestService(docRepo, indexer, fileArchive, publisher)
	documentService := service.NewDocumentService(docRepo, chunkRepo, fileArchive, publisher)
	searchService := service.NewSearchService(retriever, fulltext)
	healthService := service.NewHealthService(databasePinger(db), dependencies(rdb, archive, esClient, producer)...)

	// 7. 启动后台镜像消费者
	if producer != nil && esClient != nil {
		var counter kafka.AttemptCounter = kafka.NewMemoryCounter()
		if rdb != nil {
			counter = kafka.NewRedisCounter(rdb)
		}
		processor := pipeline.NewProcessor(chunkRepo, esClient)
		go kafka.StartConsumer(rootCtx, cfg.Kafka, processor, counter)
	}

	// 7.1 导入种子目录
	if cfg.Server.SeedDir != "" && db != nil {
		go seedDocuments(rootCtx, cfg.Server.SeedDir, documentService, ingestService)
	}

	// 8. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 9. 注册路由
	healthHandler := handler.NewHealthHandler(healthService)
	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Root)
	r.GET("/test", healthHandler.Test)

	r.POST("/ingest", handler.NewIngestHandler(ingestService).Ingest)

	documentHandler := handler.NewDocumentHandler(documentService)
	documents := r.Group("/documents")
	{
		documents.GET("", documentHandler.List)
		documents.DELETE("/:id", documentHandler.Delete)
		documents.GET("/:id/download", documentHandler.Download)
	}

	searchHandler := handler.NewSearchHandler(searchService, cfg.Retrieval.DefaultTopK)
	r.GET("/search", searchHandler.Search)
	r.GET("/search/fulltext", searchHandler.Fulltext)

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		})(r),
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 停止消费者与种子导入
	cancelRoot()

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("服务已优雅关闭")
}

func databasePinger(db *gorm.DB) service.Pinger {
	if db == nil {
		return nil
	}
	return service.PingFunc(func(ctx context.Context) error {
		return database.PingMySQL(ctx, db)
	})
}

// dependencies 列出 /test 报告的可选依赖。未启用或初始化失败的依赖 Pinger 为 nil。
func dependencies(rdb *redis.Client, archive *storage.Archive, esClient *es.Client, producer *kafka.Producer) []service.Dependency {
	deps := []service.Dependency{{Name: "redis"}, {Name: "minio"}, {Name: "elasticsearch"}, {Name: "kafka"}}
	if rdb != nil {
		deps[0].Pinger = service.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	if archive != nil {
		deps[1].Pinger = archive
	}
	if esClient != nil {
		deps[2].Pinger = esClient
	}
	if producer != nil {
		deps[3].Pinger = producer
	}
	return deps
}
