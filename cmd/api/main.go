package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yourusername/sekolah-api/internal/config"
	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/handler"
	"github.com/yourusername/sekolah-api/internal/middleware"
	pgRepo "github.com/yourusername/sekolah-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/sekolah-api/internal/repository/redis"
	"github.com/yourusername/sekolah-api/internal/service"
	"github.com/yourusername/sekolah-api/internal/service/ujian"
	"github.com/yourusername/sekolah-api/internal/storage"
	"github.com/yourusername/sekolah-api/pkg/auth"
	"github.com/yourusername/sekolah-api/pkg/crypto"
	"github.com/yourusername/sekolah-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	log.Println("Database connection established")

	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Repositories
	userRepo := pgRepo.NewUserRepo(db)
	guruRepo := pgRepo.NewGuruRepo(db)
	stafRepo := pgRepo.NewStafRepo(db)
	siswaRepo := pgRepo.NewSiswaRepo(db)
	kelasRepo := pgRepo.NewKelasRepo(db)
	mapelRepo := pgRepo.NewMapelRepo(db)
	bankSoalRepo := pgRepo.NewBankSoalRepo(db)
	kehadiranRepo := pgRepo.NewKehadiranRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient, cfg.Redis.KeyPrefix)
	if err != nil {
		log.Printf("Failed to initialize cache repository: %v", err)
		os.Exit(1)
	}

	// Encrypted question and answer files
	blobs, err := storage.NewFSStore(cfg.Storage.Root)
	if err != nil {
		log.Printf("Failed to open storage root %s: %v", cfg.Storage.Root, err)
		os.Exit(1)
	}
	encrypter, err := crypto.NewAESGCM(cfg.Storage.AppKey)
	if err != nil {
		log.Printf("Failed to initialize file encrypter: %v", err)
		os.Exit(1)
	}
	files := storage.NewSecureStore(blobs, encrypter)

	// Exam subsystem
	examDeps := &ujian.Dependencies{
		BankSoalRepo:  bankSoalRepo,
		KehadiranRepo: kehadiranRepo,
		KelasRepo:     kelasRepo,
		GuruRepo:      guruRepo,
		CacheRepo:     cacheRepo,
		Files:         files,
		Grader:        ujian.PlaceholderGrader{},
		Config: &ujian.Config{
			Concurrency:      cfg.Exam.Concurrency,
			PerPage:          cfg.Exam.PerPage,
			SelectedCountTTL: cfg.Exam.SelectedCountTTL,
		},
	}
	aggregator := ujian.NewAggregator(examDeps)
	sessionService := ujian.NewSessionService(examDeps)
	kehadiranService := ujian.NewKehadiranService(examDeps, aggregator)
	raporExporter := ujian.NewRaporExporter(examDeps)
	bankSoalService := ujian.NewBankSoalService(examDeps)

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	authService, err := service.NewAuthService(userRepo, kelasRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	guruService := service.NewGuruService(guruRepo)
	stafService := service.NewStafService(stafRepo)
	siswaService := service.NewSiswaService(siswaRepo)
	kelasService := service.NewKelasService(kelasRepo)
	mapelService := service.NewMapelService(mapelRepo)
	dashboardService := service.NewDashboardService(service.DashboardRepos{
		User:      userRepo,
		Guru:      guruRepo,
		Siswa:     siswaRepo,
		Staf:      stafRepo,
		Kelas:     kelasRepo,
		Mapel:     mapelRepo,
		BankSoal:  bankSoalRepo,
		Kehadiran: kehadiranRepo,
	}, cacheRepo, cfg.Exam.DashboardTTL)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	guruHandler := handler.NewGuruHandler(guruService)
	stafHandler := handler.NewStafHandler(stafService)
	siswaHandler := handler.NewSiswaHandler(siswaService)
	kelasHandler := handler.NewKelasHandler(kelasService)
	mapelHandler := handler.NewMapelHandler(mapelService)
	bankSoalHandler := handler.NewBankSoalHandler(bankSoalService)
	ujianHandler := handler.NewUjianHandler(sessionService, kehadiranService, raporExporter)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := handler.RegisterValidators(v); err != nil {
			log.Printf("Failed to register validators: %v", err)
			os.Exit(1)
		}
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := os.Getenv("GIN_MODE") == "release"

	router := gin.Default()

	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	allowedOrigins := cfg.Server.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.CSRFHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		Secure:   cfg.Session.Secure || isProduction,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(cfg.Session.Name, store))

	loginLimit := rateLimiter.LimitByIP(middleware.LoginRateLimitConfig())
	exportLimit := rateLimiter.Limit(middleware.ExportRateLimitConfig())
	withID := middleware.ExtractUintParam("id", "id")

	// Public
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", loginLimit, authMiddleware.RequireCSRF(), authHandler.Login)
	router.POST("/register", loginLimit, authMiddleware.RequireCSRF(), authHandler.Register)
	router.POST("/logout", authMiddleware.RequireAuth(), authMiddleware.RequireCSRF(), authHandler.Logout)

	// SuperAdmin
	admin := router.Group("/SuperAdmin")
	admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleSuperAdmin), authMiddleware.RequireCSRF())
	{
		admin.GET("", dashboardHandler.Show)

		registerCRUD(admin.Group("/data-guru"), withID, guruHandler)
		registerCRUD(admin.Group("/data-staf"), withID, stafHandler)
		registerCRUD(admin.Group("/data-siswa"), withID, siswaHandler)
		registerCRUD(admin.Group("/data-kelas"), withID, kelasHandler)
		registerCRUD(admin.Group("/mata-pelajaran"), withID, mapelHandler)
		registerCRUD(admin.Group("/bank-soal"), withID, bankSoalHandler)

		admin.GET("/manajemen-kehadiran", ujianHandler.Index(handler.ViewManajemenKehadiran))
		admin.GET("/nilai", ujianHandler.Index(handler.ViewNilai))
		admin.GET("/nilai/export", exportLimit, ujianHandler.Export)
	}

	// Guru
	guru := router.Group("/guru")
	guru.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleGuru), authMiddleware.RequireCSRF())
	{
		guru.GET("", dashboardHandler.Show)
		registerCRUD(guru.Group("/bank-soal"), withID, bankSoalHandler)
		guru.GET("/nilai", ujianHandler.Index(handler.ViewNilai))
	}

	// Siswa
	siswa := router.Group("/siswa")
	siswa.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleSiswa), authMiddleware.RequireCSRF())
	{
		siswa.GET("", dashboardHandler.Show)
		siswa.GET("/ujian", ujianHandler.SiswaIndex)
		siswa.POST("/ujian/start", ujianHandler.Start)
		siswa.GET("/ujian/:id", withID, ujianHandler.Blank)
		siswa.POST("/ujian/:id/jawaban", withID, ujianHandler.Submit)
		siswa.GET("/kehadiran/:id/preview", withID, ujianHandler.Preview)
	}

	// Staf
	staf := router.Group("/staf")
	staf.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleStaf), authMiddleware.RequireCSRF())
	{
		staf.GET("", dashboardHandler.Show)
	}

	// JSON API for bearer-token clients
	api := router.Group("/api")
	{
		api.POST("/auth/token", loginLimit, authHandler.Token)

		authed := api.Group("")
		authed.Use(authMiddleware.RequireAuth(), authMiddleware.RequireCSRF())
		{
			authed.GET("/me", authHandler.Me)
			authed.GET("/kehadiran/:id/file", withID,
				authMiddleware.RequireRole(entity.RoleSuperAdmin, entity.RoleGuru, entity.RoleSiswa),
				ujianHandler.FileContent)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Println("Server exited properly")
}

type crudHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func registerCRUD(g *gin.RouterGroup, withID gin.HandlerFunc, h crudHandler) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", withID, h.Get)
	g.PUT("/:id", withID, h.Update)
	g.DELETE("/:id", withID, h.Delete)
}
