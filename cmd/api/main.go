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

	"campuslink/internal/adapter/api"
	"campuslink/internal/adapter/api/handler"
	apimiddleware "campuslink/internal/adapter/api/middleware"
	"campuslink/internal/adapter/api/router"
	"campuslink/internal/adapter/repository"
	"campuslink/internal/domain/service"
	"campuslink/internal/infrastructure/firebase"
	"campuslink/internal/infrastructure/websocket"
	"campuslink/internal/usecase"
	"campuslink/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	// Service account comes from the environment in production, from a file
	// in local development. With neither set, application default
	// credentials apply.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	groupRepo := repository.NewFirestoreGroupRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)

	acquaintanceService := service.NewAcquaintanceService(firestoreClient)

	wsManager := websocket.NewManager(groupRepo)

	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, userRepo, acquaintanceService, wsManager)
	messageUseCase := usecase.NewMessageUseCase(messageRepo, groupRepo, userRepo, notificationUseCase, wsManager)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.GeneralRateLimit())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebase.NewAuthClient(authClient))
	banMiddleware := apimiddleware.NewBanMiddleware(userRepo)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	messageHandler := handler.NewMessageHandler(messageUseCase)
	notificationHandler := handler.NewNotificationHandler(notificationUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware, userRepo)

	router.Setup(e, messageHandler, notificationHandler, wsHandler, authMiddleware, banMiddleware, adminMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
