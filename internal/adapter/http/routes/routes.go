package routes

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "printhub/docs" // This will be auto-generated
	"printhub/internal/adapter/http/handlers"
	repository2 "printhub/internal/adapter/persistence/repository"
	infraauth "printhub/internal/infrastructure/auth"
	"printhub/internal/infrastructure/database"
	"printhub/internal/infrastructure/estimator"
	"printhub/internal/infrastructure/notifications"
	"printhub/internal/infrastructure/oauth"
	"printhub/internal/infrastructure/payments"
	"printhub/internal/infrastructure/storage"
	"printhub/internal/usecase"
	"printhub/internal/usecase/interfaces"
)

var router = gin.Default()

const PORT = 8080

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 14 * 24 * time.Hour
)

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()
	rdb := database.ConnectRedis()

	userRepo := repository2.NewUserDynamoRepository(ddb)
	cartRepo := repository2.NewCartDynamoRepository(ddb)
	orderRepo := repository2.NewOrderDynamoRepository(ddb)
	printJobRepo := repository2.NewPrintJobDynamoRepository(ddb)
	refreshRepo := repository2.NewRefreshTokenRedisRepository(rdb)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	tokenService := infraauth.NewJWTService(secret,
		envDuration("JWT_ACCESS_TTL", defaultAccessTTL),
		envDuration("JWT_REFRESH_TTL", defaultRefreshTTL),
	)
	passwordService := infraauth.NewPasswordService()

	estimatorGateway, err := estimator.NewHTTPGateway(
		os.Getenv("ESTIMATOR_BASE_URL"),
		envDuration("ESTIMATOR_TIMEOUT", 0),
	)
	if err != nil {
		log.Fatalf("Estimator gateway not configured: %v", err)
	}

	storagePath := os.Getenv("MODEL_STORAGE_PATH")
	if storagePath == "" {
		storagePath = "./data/models"
	}
	modelStorage, err := storage.NewLocalStorage(storagePath)
	if err != nil {
		log.Fatalf("Model storage not available: %v", err)
	}

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	pricingUseCase := usecase.NewPricingUseCase(estimatorGateway, printJobRepo, modelStorage)
	oauthManager := oauth.NewManager()
	if len(oauthManager.Providers()) == 0 {
		log.Printf("No OAuth providers configured, social sign-in disabled")
	}

	authUseCase := usecase.NewAuthUseCase(userRepo, refreshRepo, cartRepo, passwordService, tokenService, notifications.NewLogMailer(), oauthManager)
	cartUseCase := usecase.NewCartUseCase(cartRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, cartRepo, paymentGateway)

	pricingHandler := handlers.NewPricingHandler(pricingUseCase)
	authHandler := handlers.NewAuthHandler(authUseCase)
	cartHandler := handlers.NewCartHandler(cartUseCase)
	orderHandler := handlers.NewOrderHandler(orderUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPricingRoutes(v1, pricingHandler, tokenService)
	addAuthRoutes(v1, authHandler, tokenService)
	addStorefrontRoutes(v1, cartHandler, orderHandler, tokenService)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using default", name, raw)
		return fallback
	}
	return d
}
