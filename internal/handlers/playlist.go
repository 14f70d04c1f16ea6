package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"party_playlist/internal/models"
	"party_playlist/internal/playlist"
	"party_playlist/internal/response"

	"github.com/gin-gonic/gin"
)

type addTrackRequest struct {
	TrackID uint   `json:"track_id" binding:"required"`
	AddedBy string `json:"added_by"`
}

type updateTrackRequest struct {
	Position  *float64 `json:"position"`
	AfterID   *uint    `json:"after_id"`
	BeforeID  *uint    `json:"before_id"`
	IsPlaying *bool    `json:"is_playing"`
}

type voteRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

type autoSortRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// GetPlaylistHandler обрабатывает запрос текущего плейлиста
// @Summary		Текущий плейлист
// @Description	Возвращает записи плейлиста по возрастанию позиции
// @Tags			playlist
// @Accept			json
// @Produce		json
// @Success		200	{array}		models.PlaylistTrack	"Записи плейлиста"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/playlist [get]
func (h *Handler) GetPlaylistHandler(c *gin.Context) {
	items, err := h.Playlist.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки плейлиста",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddTrackHandler обрабатывает добавление трека в плейлист
// @Summary		Добавление трека
// @Description	Добавляет трек из каталога в конец плейлиста и уведомляет всех клиентов
// @Tags			playlist
// @Accept			json
// @Produce		json
// @Param			input	body		addTrackRequest	true	"Трек и имя участника"
// @Success		201	{object}	models.PlaylistTrack	"Созданная запись"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, DUPLICATE_TRACK)"
// @Failure		404	{object}	response.ErrorResponse	"Трек не найден (NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/playlist [post]
func (h *Handler) AddTrackHandler(c *gin.Context) {
	var req addTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Неверное тело запроса",
			Details: err.Error(),
		})
		return
	}
	if req.AddedBy == "" {
		req.AddedBy = "Anonymous"
	}

	entry, err := h.Playlist.Add(req.TrackID, req.AddedBy)
	if err != nil {
		switch {
		case errors.Is(err, playlist.ErrNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "Трек не найден в каталоге",
			})
		case errors.Is(err, playlist.ErrDuplicateTrack):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "DUPLICATE_TRACK",
				Message: "Этот трек уже есть в плейлисте",
			})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка добавления трека",
				Details: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateTrackHandler обрабатывает перемещение и смену играющего трека
// @Summary		Обновление записи плейлиста
// @Description	Перемещает запись (position либо after_id/before_id) и/или переключает флаг воспроизведения
// @Tags			playlist
// @Accept			json
// @Produce		json
// @Param			id		path		string				true	"ID записи"
// @Param			input	body		updateTrackRequest	true	"Цель перемещения и/или is_playing"
// @Success		200	{object}	models.PlaylistTrack	"Обновлённая запись"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_ID, VALIDATION_ERROR, INVALID_TARGET)"
// @Failure		404	{object}	response.ErrorResponse	"Запись не найдена (NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/playlist/{id} [patch]
func (h *Handler) UpdateTrackHandler(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	var req updateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Неверное тело запроса",
			Details: err.Error(),
		})
		return
	}
	if req.Position == nil && req.AfterID == nil && req.BeforeID == nil && req.IsPlaying == nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Не указано ни одно изменяемое поле",
		})
		return
	}

	var last *models.PlaylistTrack
	if req.Position != nil || req.AfterID != nil || req.BeforeID != nil {
		moved, err := h.Playlist.Move(id, playlist.MoveTarget{
			Position: req.Position,
			AfterID:  req.AfterID,
			BeforeID: req.BeforeID,
		})
		if err != nil {
			writePlaylistError(c, err)
			return
		}
		last = moved
	}

	if req.IsPlaying != nil {
		var updated *models.PlaylistTrack
		var err error
		if *req.IsPlaying {
			updated, err = h.Playlist.Activate(id)
		} else {
			updated, err = h.Playlist.Deactivate(id)
		}
		if err != nil {
			writePlaylistError(c, err)
			return
		}
		last = updated
	}

	c.JSON(http.StatusOK, last)
}

// VoteHandler обрабатывает голос за запись плейлиста
// @Summary		Голосование
// @Description	Применяет голос up (+1) или down (−1); счётчик не ограничен ни снизу, ни сверху
// @Tags			playlist
// @Accept			json
// @Produce		json
// @Param			id		path		string		true	"ID записи"
// @Param			input	body		voteRequest	true	"Направление голоса"
// @Success		200	{object}	models.PlaylistTrack	"Обновлённая запись"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_ID, VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Запись не найдена (NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/playlist/{id}/vote [post]
func (h *Handler) VoteHandler(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Направление должно быть up или down",
			Details: err.Error(),
		})
		return
	}

	entry, err := h.Playlist.Vote(id, playlist.Direction(req.Direction))
	if err != nil {
		writePlaylistError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// AutoSortHandler обрабатывает переключение авто-сортировки
// @Summary		Авто-сортировка по голосам
// @Description	Включает или выключает автоматическую пересортировку плейлиста по голосам
// @Tags			playlist
// @Accept			json
// @Produce		json
// @Param			input	body		autoSortRequest	true	"Флаг включения"
// @Success		200	{object}	response.AutoSortResponse	"Текущее состояние"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Router			/api/playlist/auto-sort [post]
func (h *Handler) AutoSortHandler(c *gin.Context) {
	var req autoSortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Неверное тело запроса",
			Details: err.Error(),
		})
		return
	}

	h.Playlist.SetAutoSort(*req.Enabled)
	c.JSON(http.StatusOK, response.AutoSortResponse{AutoSort: *req.Enabled})
}

// RemoveTrackHandler обрабатывает удаление записи из плейлиста
// @Summary		Удаление записи
// @Description	Удаляет запись из плейлиста; если она играла, следующая не включается автоматически
// @Tags			playlist
// @Accept			json
// @Produce		json
// @Param			id	path	string	true	"ID записи"
// @Success		204	"Запись удалена"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Запись не найдена (NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/playlist/{id} [delete]
func (h *Handler) RemoveTrackHandler(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	if err := h.Playlist.Remove(id); err != nil {
		writePlaylistError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func entryID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_ID",
			Message: "Неверный идентификатор записи",
		})
		return 0, false
	}
	return uint(id), true
}

func writePlaylistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, playlist.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Запись плейлиста не найдена",
		})
	case errors.Is(err, playlist.ErrInvalidTarget):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_TARGET",
			Message: "Некорректная цель перемещения",
		})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка обновления плейлиста",
			Details: err.Error(),
		})
	}
}
