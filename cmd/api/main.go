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

	"tradebinder/internal/adapter/api"
	"tradebinder/internal/adapter/api/handler"
	apimiddleware "tradebinder/internal/adapter/api/middleware"
	"tradebinder/internal/adapter/api/router"
	"tradebinder/internal/adapter/repository"
	"tradebinder/internal/infrastructure/firebase"
	"tradebinder/internal/infrastructure/websocket"
	"tradebinder/internal/usecase"
	"tradebinder/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	// Service account from environment variable (production) or file path
	// (local development); application default credentials otherwise.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
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

	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	collectionRepo := repository.NewFirestoreCollectionRepository(firestoreClient)
	offerRepo := repository.NewFirestoreOfferRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	matchingUseCase := usecase.NewMatchingUseCase(listingRepo, collectionRepo, cfg.RankCacheSize, cfg.BrowseLimit)
	listingUseCase := usecase.NewListingUseCase(listingRepo, matchingUseCase)
	collectionUseCase := usecase.NewCollectionUseCase(collectionRepo)
	offerUseCase := usecase.NewOfferUseCase(offerRepo, listingRepo, collectionRepo, matchingUseCase, wsManager)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, listingRepo, wsManager)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	listingHandler := handler.NewListingHandler(listingUseCase, offerUseCase)
	matchingHandler := handler.NewMatchingHandler(matchingUseCase)
	offerHandler := handler.NewOfferHandler(offerUseCase)
	collectionHandler := handler.NewCollectionHandler(collectionUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)
	healthHandler := handler.NewHealthHandler(firebaseAuthClient)

	router.Setup(
		e,
		authMiddleware,
		listingHandler,
		matchingHandler,
		offerHandler,
		collectionHandler,
		chatHandler,
		wsHandler,
		healthHandler,
	)

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
