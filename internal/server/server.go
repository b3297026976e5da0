package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "storyreel/docs"
	"storyreel/internal/ai/chain"
	"storyreel/internal/config"
	"storyreel/internal/handler"
	pipelineHandler "storyreel/internal/handler/pipeline"
	"storyreel/internal/pipeline"
	"storyreel/internal/pkg/cache"
	"storyreel/internal/pkg/captiontools"
	"storyreel/internal/pkg/ffmpeg"
	"storyreel/internal/pkg/mongodb"
	"storyreel/internal/pkg/probecache"
	"storyreel/internal/pkg/renderapi"
	"storyreel/internal/pkg/storage"
	"storyreel/internal/pkg/storage/local"
	"storyreel/internal/pkg/storagefactory"
	"storyreel/internal/pkg/t2i"
	"storyreel/internal/pkg/tts"
	galleryRepo "storyreel/internal/repository/gallery"
	"storyreel/internal/server/middleware"
	"storyreel/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache

	pipelineSvc service.PipelineService
	finalizeSvc service.FinalizeService
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 初始化 MongoDB (可选)
	var mongoClient *mongodb.Client
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without it")
		} else {
			mongoClient = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// 初始化 Redis (可选，用于音频时长探测缓存)
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	// 初始化存储
	store, err := storagefactory.NewStorage(context.Background(), &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("initialize storage: %w", err)
	}
	log.Info().Str("type", store.GetStorageType()).Msg("storage initialized")

	// 初始化上游客户端
	scriptChain, err := chain.NewScriptChain(context.Background(), &cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("initialize script chain: %w", err)
	}

	ttsClient, err := tts.NewClient(&cfg.TTS)
	if err != nil {
		return nil, fmt.Errorf("initialize TTS client: %w", err)
	}

	imageClient, err := t2i.NewClient(&cfg.Image)
	if err != nil {
		return nil, fmt.Errorf("initialize image client: %w", err)
	}

	renderClient, err := renderapi.NewClient(cfg.Render.BaseURL, cfg.Render.APIKey)
	if err != nil {
		return nil, fmt.Errorf("initialize render client: %w", err)
	}

	// 音频时长探测：ffprobe + Redis缓存
	prober := probecache.New(ffmpeg.NewClient(), redisCache)

	maxWords := cfg.Pipeline.MaxWordsPerCaption
	if maxWords <= 0 {
		maxWords = captiontools.DefaultMaxWordsPerLine
	}
	minClip := cfg.Pipeline.MinClipDuration
	if minClip <= 0 {
		minClip = pipeline.DefaultMinClipDuration
	}
	mapper := pipeline.NewClipMapper(prober, maxWords, minClip)

	pipelineSvc := service.NewPipelineService(
		scriptChain,
		ttsClient,
		imageClient,
		store,
		mapper,
		renderClient,
		&cfg.Render,
	)

	var finalizeSvc service.FinalizeService
	if mongoClient != nil {
		videoRepo := galleryRepo.NewVideoRepo(mongoClient.Database())
		finalizeSvc = service.NewFinalizeService(
			pipelineSvc,
			store,
			videoRepo,
			cfg.Render.OutputFormat,
			cfg.Render.OutputResolution,
		)
	} else {
		log.Warn().Msg("MongoDB not configured, finalize endpoints disabled")
	}

	srv := &Server{
		cfg:         cfg,
		engine:      engine,
		mongo:       mongoClient,
		redis:       redisCache,
		pipelineSvc: pipelineSvc,
		finalizeSvc: finalizeSvc,
	}

	srv.setupRoutes(store)

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(store storage.Storage) {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	pipelineHdl := pipelineHandler.NewHandler(s.pipelineSvc, s.finalizeSvc)

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		// 流水线会话
		v1.POST("/sessions", pipelineHdl.CreateSession)
		v1.GET("/sessions/:session_id", pipelineHdl.GetSession)

		// 素材生成
		v1.POST("/sessions/:session_id/audios", pipelineHdl.GenerateAudios)
		v1.POST("/sessions/:session_id/images", pipelineHdl.GenerateImages)
		v1.POST("/sessions/:session_id/items", pipelineHdl.BuildMediaItems)

		// 编辑
		v1.POST("/sessions/:session_id/items/reorder", pipelineHdl.Reorder)
		v1.PUT("/sessions/:session_id/items/:item_id/transition", pipelineHdl.SetTransition)
		v1.PUT("/sessions/:session_id/effect", pipelineHdl.SetEffect)

		// 渲染
		v1.POST("/sessions/:session_id/render", pipelineHdl.SubmitRender)
		v1.GET("/sessions/:session_id/render", pipelineHdl.RenderStatus)

		// 终片与作品
		if s.finalizeSvc != nil {
			v1.POST("/sessions/:session_id/finalize", pipelineHdl.Finalize)
			v1.GET("/videos", pipelineHdl.ListVideos)
			v1.GET("/videos/:video_id", pipelineHdl.GetVideo)
		}

		// 本地存储直传接口
		if localStore, ok := store.(*local.LocalStorage); ok {
			uploadHdl := handler.NewUploadHandler(localStore)
			v1.PUT("/internal/resources/upload", uploadHdl.Upload)
		}
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
