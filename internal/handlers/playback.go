package handlers

import (
	"net/http"

	"party_playlist/internal/response"

	"github.com/gin-gonic/gin"
)

// PauseHandler обрабатывает паузу воспроизведения
// @Summary		Пауза
// @Description	Снимает флаг воспроизведения со всех записей и уведомляет клиентов
// @Tags			playback
// @Accept			json
// @Produce		json
// @Success		200	{object}	response.StatusResponse	"Статус paused"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/playback/pause [post]
func (h *Handler) PauseHandler(c *gin.Context) {
	if err := h.Playlist.DeactivateAll(); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка постановки на паузу",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, response.StatusResponse{Status: "paused"})
}

// ResumeHandler обрабатывает продолжение воспроизведения
// @Summary		Продолжение
// @Description	Уведомляет клиентов о продолжении; какую запись включить, клиент решает отдельным запросом
// @Tags			playback
// @Accept			json
// @Produce		json
// @Success		200	{object}	response.StatusResponse	"Статус playing"
// @Router			/api/playback/resume [post]
func (h *Handler) ResumeHandler(c *gin.Context) {
	h.Playlist.Resume()
	c.JSON(http.StatusOK, response.StatusResponse{Status: "playing"})
}
