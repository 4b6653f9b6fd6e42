package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"Thikana-App/internal/domain/service"
	"Thikana-App/internal/handler"
	"Thikana-App/internal/infrastructure/firestore"
	"Thikana-App/internal/repository"
	"Thikana-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数: FIRESTORE_PROJECT_ID")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}

	ctx := context.Background()

	fmt.Println("Initializing Firestore client...")
	fsClient, err := firestore.NewFirestoreClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
	}
	defer fsClient.Close()

	// リポジトリ層
	client := fsClient.GetClient()
	businessRepo := repository.NewFirestoreBusinessRepository(client)
	postRepo := repository.NewFirestorePostRepository(client)
	followRepo := repository.NewFirestoreFollowRepository(client)
	indexRepo := repository.NewFirestoreLocationIndexRepository(client)

	// ドメインサービス層
	scoring := service.NewScoringService(nil)
	nearbySearch := service.NewNearbySearchService(indexRepo, businessRepo, nil)

	// ユースケース層
	feedUC := usecase.NewFeedUseCase(followRepo, businessRepo, postRepo, nearbySearch, scoring)
	discoveryUC := usecase.NewDiscoveryUseCase(followRepo, businessRepo, nearbySearch, scoring)
	locationUC := usecase.NewLocationUseCase(businessRepo, indexRepo)

	// ハンドラー層
	feedHandler := handler.NewFeedHandler(feedUC)
	discoveryHandler := handler.NewDiscoveryHandler(discoveryUC)
	locationHandler := handler.NewBusinessLocationHandler(locationUC)

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "Thikana-App"})
	})

	r.GET("/feed/:user_id", feedHandler.GetFeed)
	r.GET("/discovery/who-to-follow/:user_id", discoveryHandler.GetWhoToFollow)
	r.PUT("/businesses/:id/location", locationHandler.PutBusinessLocation)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("Thikana-App server starting on :%s...\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}
