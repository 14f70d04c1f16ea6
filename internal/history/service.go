// Package history ведёт журнал воспроизведения: дедупликация повторных
// отметок и снапшот последних записей для новых подключений.
package history

import (
	"errors"
	"sync"
	"time"

	"party_playlist/internal/models"
	"party_playlist/internal/ws"

	"gorm.io/gorm"
)

// DedupWindow — окно, в котором повторная отметка того же трека тем же
// участником схлопывается в уже существующую запись.
const DedupWindow = 60 * time.Second

// MaxLimit — максимум записей в выдаче Recent и в снапшоте history.sync.
const MaxLimit = 50

// ErrNotFound — трек с указанным идентификатором отсутствует в каталоге.
var ErrNotFound = errors.New("трек не найден")

// Service — журнал воспроизведения. Мутации сериализованы собственным
// мьютексом: две одновременные отметки не создадут дубликат в окне.
type Service struct {
	db  *gorm.DB
	hub *ws.Hub
	mu  sync.Mutex
}

func NewService(db *gorm.DB, hub *ws.Hub) *Service {
	return &Service{db: db, hub: hub}
}

// Record добавляет отметку «трек прозвучал». Если та же пара (трек, участник)
// уже отмечалась в пределах DedupWindow, возвращается существующая запись и
// событие не рассылается. Второе возвращаемое значение — создана ли новая.
func (s *Service) Record(trackID uint, playedBy string) (*models.PlayHistory, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var track models.Track
	if err := s.db.First(&track, trackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	cutoff := time.Now().Add(-DedupWindow)
	var recent models.PlayHistory
	err := s.db.Preload("Track").
		Where("track_id = ? AND played_by = ? AND played_at >= ?", trackID, playedBy, cutoff).
		Order("played_at DESC").
		First(&recent).Error
	if err == nil {
		return &recent, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	entry := models.PlayHistory{
		TrackID:  trackID,
		PlayedBy: playedBy,
		PlayedAt: time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, false, err
	}
	if err := s.db.Preload("Track").First(&entry, entry.ID).Error; err != nil {
		return nil, false, err
	}

	s.hub.Broadcast(ws.WSMessage{EventType: "history.added", Data: entry})
	return &entry, true, nil
}

// Recent возвращает последние записи журнала по убыванию времени.
// limit вне диапазона (0, MaxLimit] приводится к MaxLimit.
func (s *Service) Recent(limit int) ([]models.PlayHistory, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = MaxLimit
	}
	var entries []models.PlayHistory
	err := s.db.Preload("Track").
		Order("played_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// Snapshot строит сообщение history.sync для нового подключения.
func (s *Service) Snapshot() (ws.WSMessage, error) {
	entries, err := s.Recent(MaxLimit)
	if err != nil {
		return ws.WSMessage{}, err
	}
	return ws.WSMessage{
		EventType: "history.sync",
		Data:      map[string]interface{}{"history": entries},
	}, nil
}

// PruneOlderThan удаляет записи старше заданного возраста. Журнал хранит
// ограниченное окно воспроизведения, а не бесконечную историю.
func (s *Service) PruneOlderThan(age time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	threshold := time.Now().Add(-age)
	res := s.db.Where("played_at < ?", threshold).Delete(&models.PlayHistory{})
	return res.RowsAffected, res.Error
}
