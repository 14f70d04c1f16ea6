package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"party_playlist/internal/history"
	"party_playlist/internal/response"

	"github.com/gin-gonic/gin"
)

type addHistoryRequest struct {
	TrackID  uint   `json:"track_id" binding:"required"`
	PlayedBy string `json:"played_by"`
}

// GetHistoryHandler обрабатывает запрос журнала воспроизведения
// @Summary		Журнал воспроизведения
// @Description	Возвращает последние записи журнала по убыванию времени, не более 50
// @Tags			history
// @Accept			json
// @Produce		json
// @Param			limit	query		int	false	"Максимум записей (по умолчанию 50)"
// @Success		200	{array}		models.PlayHistory	"Записи журнала"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/history [get]
func (h *Handler) GetHistoryHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.History.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки журнала",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// AddHistoryHandler обрабатывает отметку «трек прозвучал»
// @Summary		Отметка воспроизведения
// @Description	Добавляет запись в журнал; повтор той же пары (трек, участник) в течение 60 секунд возвращает существующую запись
// @Tags			history
// @Accept			json
// @Produce		json
// @Param			input	body		addHistoryRequest	true	"Трек и имя участника"
// @Success		200	{object}	models.PlayHistory	"Запись журнала"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Трек не найден (NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/history [post]
func (h *Handler) AddHistoryHandler(c *gin.Context) {
	var req addHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Неверное тело запроса",
			Details: err.Error(),
		})
		return
	}
	if req.PlayedBy == "" {
		req.PlayedBy = "Anonymous"
	}

	entry, _, err := h.History.Record(req.TrackID, req.PlayedBy)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "Трек не найден в каталоге",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка добавления в журнал",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, entry)
}
