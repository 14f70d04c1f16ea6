package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"party_playlist/internal/models"
	"party_playlist/internal/response"
	"party_playlist/internal/storage"

	"github.com/gin-gonic/gin"
)

const tracksCacheKey = "tracks:catalog"
const tracksCacheTTL = 60 * time.Second

// GetTracksHandler обрабатывает запрос каталога треков
// @Summary		Каталог треков
// @Description	Возвращает все треки каталога по алфавиту. Ответ кэшируется в Redis на 60 секунд.
// @Tags			tracks
// @Accept			json
// @Produce		json
// @Success		200	{array}		models.Track	"Список треков"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/tracks [get]
func (h *Handler) GetTracksHandler(c *gin.Context) {
	ctx := context.Background()

	// Каталог только для чтения — смело отдаём из кэша.
	if storage.RedisClient != nil {
		if cached, err := storage.RedisClient.Get(ctx, tracksCacheKey).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			return
		}
	}

	var tracks []models.Track
	if err := storage.DB.Order("title ASC").Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки каталога треков",
			Details: err.Error(),
		})
		return
	}

	if storage.RedisClient != nil {
		if payload, err := json.Marshal(tracks); err == nil {
			storage.RedisClient.Set(ctx, tracksCacheKey, payload, tracksCacheTTL)
		}
	}

	c.JSON(http.StatusOK, tracks)
}
