package main

import (
	"fmt"
	"log"
	"os"

	_ "party_playlist/docs"
	"party_playlist/internal/handlers"
	"party_playlist/internal/history"
	"party_playlist/internal/models"
	"party_playlist/internal/playlist"
	"party_playlist/internal/storage"
	"party_playlist/internal/tasks"
	"party_playlist/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title	Party Playlist — общий плейлист вечеринки
func main() {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectDatabase()

	if err := storage.DB.AutoMigrate(&models.Track{}, &models.PlaylistTrack{}, &models.PlayHistory{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.SeedTracks()

	storage.InitRedis()

	hub := ws.NewHub()
	playlistService := playlist.NewService(storage.DB, hub)
	historyService := history.NewService(storage.DB, hub)

	// Новый клиент получает history.sync раньше любых живых событий.
	hub.SetSnapshotFunc(historyService.Snapshot)
	go hub.Run()
	defer hub.Stop()

	scheduler := tasks.InitScheduler(playlistService, historyService)
	defer scheduler.Stop()

	h := handlers.New(playlistService, historyService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/tracks", h.GetTracksHandler)

		api.GET("/playlist", h.GetPlaylistHandler)
		api.POST("/playlist", h.AddTrackHandler)
		api.POST("/playlist/auto-sort", h.AutoSortHandler)
		api.PATCH("/playlist/:id", h.UpdateTrackHandler)
		api.DELETE("/playlist/:id", h.RemoveTrackHandler)
		api.POST("/playlist/:id/vote", h.VoteHandler)

		api.POST("/playback/pause", h.PauseHandler)
		api.POST("/playback/resume", h.ResumeHandler)

		api.GET("/history", h.GetHistoryHandler)
		api.POST("/history", h.AddHistoryHandler)
	}

	r.GET("/ws", hub.ServeWS)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
