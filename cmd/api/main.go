package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"econexus/internal/adapter/api"
	"econexus/internal/adapter/api/handler"
	apimiddleware "econexus/internal/adapter/api/middleware"
	"econexus/internal/adapter/api/router"
	"econexus/internal/adapter/repository"
	"econexus/internal/infrastructure/firebase"
	"econexus/internal/infrastructure/watcher"
	"econexus/internal/infrastructure/websocket"
	"econexus/internal/trigger"
	"econexus/internal/usecase"
	"econexus/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	// Service account from the environment in production, from a file for
	// local development.
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	requestRepo := repository.NewFirestoreWasteRequestRepository(firestoreClient)
	materialRepo := repository.NewFirestoreMaterialRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)
	notifier := websocket.NewNotifier(wsManager)

	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient)
	requestUseCase := usecase.NewWasteRequestUseCase(requestRepo, userRepo)
	materialUseCase := usecase.NewMaterialUseCase(materialRepo, userRepo)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, userRepo, notifier)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo)

	// The trigger layer reacts to the Firestore change feed, never to the
	// HTTP handlers directly.
	triggers := trigger.NewTriggers(userRepo, notificationRepo, notifier)
	changeWatcher := watcher.NewWatcher(firestoreClient, triggers)
	changeWatcher.Start(ctx)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	profileHandler := handler.NewProfileHandler(userUseCase)
	requestHandler := handler.NewWasteRequestHandler(requestUseCase)
	materialHandler := handler.NewMaterialHandler(materialUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	notificationHandler := handler.NewNotificationHandler(notificationUseCase)
	configHandler := handler.NewConfigHandler(cfg)
	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	router.SetupProfileRouter(e, profileHandler, authMiddleware)
	router.SetupWasteRequestRouter(e, requestHandler, authMiddleware)
	router.SetupMaterialRouter(e, materialHandler, authMiddleware)
	router.SetupChatRouter(e, chatHandler, authMiddleware)
	router.SetupNotificationRouter(e, notificationHandler, authMiddleware)
	router.SetupConfigRouter(e, configHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
