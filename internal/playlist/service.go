// Package playlist реализует общий плейлист: порядок записей, голоса и
// эксклюзивность воспроизведения. Все мутации проходят через один мьютекс,
// поэтому каждая операция видит полностью закоммиченный результат предыдущей.
package playlist

import (
	"errors"
	"sync"
	"time"

	"party_playlist/internal/models"
	"party_playlist/internal/position"
	"party_playlist/internal/ws"

	"gorm.io/gorm"
)

// Direction — направление голоса.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MoveTarget описывает целевое место перемещения: либо пара соседей по ID,
// либо числовая подсказка позиции, проверяемая по текущим соседям.
type MoveTarget struct {
	AfterID  *uint    // Запись, после которой встаём (nil — в начало)
	BeforeID *uint    // Запись, перед которой встаём (nil — в конец)
	Position *float64 // Либо сырая числовая подсказка
}

// Service — точка сериализации всех мутаций плейлиста.
type Service struct {
	db  *gorm.DB
	hub *ws.Hub

	mu       sync.Mutex
	autoSort bool
}

func NewService(db *gorm.DB, hub *ws.Hub) *Service {
	return &Service{db: db, hub: hub}
}

// List возвращает плейлист по возрастанию позиции. Только чтение.
func (s *Service) List() ([]models.PlaylistTrack, error) {
	var items []models.PlaylistTrack
	err := s.db.Preload("Track").Order("position ASC").Find(&items).Error
	return items, err
}

// Add добавляет трек в конец плейлиста.
// Один и тот же трек не может находиться в плейлисте дважды.
func (s *Service) Add(trackID uint, addedBy string) (*models.PlaylistTrack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var track models.Track
	if err := s.db.First(&track, trackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var existing models.PlaylistTrack
	if err := s.db.Where("track_id = ?", trackID).First(&existing).Error; err == nil {
		return nil, ErrDuplicateTrack
	}

	// Позиция нового трека — за текущим хвостом.
	var tail models.PlaylistTrack
	var prev *float64
	if err := s.db.Order("position DESC").First(&tail).Error; err == nil {
		prev = &tail.Position
	}

	entry := models.PlaylistTrack{
		TrackID:  trackID,
		Position: position.Calculate(prev, nil),
		AddedBy:  addedBy,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Track").First(&entry, entry.ID).Error; err != nil {
		return nil, err
	}

	s.hub.Broadcast(ws.WSMessage{EventType: "track.added", Data: entry})

	if err := s.resortLocked(); err != nil {
		return nil, err
	}
	// Позиция могла измениться после авто-сортировки.
	if err := s.db.Preload("Track").First(&entry, entry.ID).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Move перемещает запись на новое место. Новый ключ порядка считается по
// соседям целевого места; при исчерпании точности float64 выполняется
// перенумерация всего плейлиста, и вставка повторяется.
func (s *Service) Move(id uint, target MoveTarget) (*models.PlaylistTrack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry models.PlaylistTrack
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	prevEntry, nextEntry, err := s.resolveNeighbors(&entry, target)
	if err != nil {
		return nil, err
	}

	newPos := position.Calculate(posOf(prevEntry), posOf(nextEntry))
	if !position.Between(newPos, posOf(prevEntry), posOf(nextEntry)) {
		// Промежуток исчерпан: перенумеровываем весь плейлист одним
		// коммитом и повторяем вычисление по тем же соседям.
		if err := s.renumberLocked(); err != nil {
			return nil, err
		}
		if prevEntry, err = reload(s.db, prevEntry); err != nil {
			return nil, err
		}
		if nextEntry, err = reload(s.db, nextEntry); err != nil {
			return nil, err
		}
		newPos = position.Calculate(posOf(prevEntry), posOf(nextEntry))
	}

	if err := s.db.Model(&entry).Update("position", newPos).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Track").First(&entry, entry.ID).Error; err != nil {
		return nil, err
	}

	s.hub.Broadcast(ws.WSMessage{EventType: "track.moved", Data: entry})
	return &entry, nil
}

// Vote применяет голос к записи: up — +1, down — −1, без пола и потолка.
func (s *Service) Vote(id uint, direction Direction) (*models.PlaylistTrack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry models.PlaylistTrack
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	delta := 1
	if direction == Down {
		delta = -1
	}
	if err := s.db.Model(&entry).Update("votes", gorm.Expr("votes + ?", delta)).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Track").First(&entry, entry.ID).Error; err != nil {
		return nil, err
	}

	s.hub.Broadcast(ws.WSMessage{EventType: "track.voted", Data: entry})

	if err := s.resortLocked(); err != nil {
		return nil, err
	}
	if err := s.db.Preload("Track").First(&entry, entry.ID).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Activate включает запись: все остальные принудительно выключаются тем же
// коммитом, так что играть может не больше одной записи. Снятие флага у
// остальных не проверяет, сколько их было — безопасно при любом прошлом.
func (s *Service) Activate(id uint) (*models.PlaylistTrack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry models.PlaylistTrack
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PlaylistTrack{}).
			Where("is_playing = ? AND id != ?", true, id).
			Update("is_playing", false).Error; err != nil {
			return err
		}
		return tx.Model(&entry).
			Updates(map[string]interface{}{"is_playing": true, "played_at": now}).Error
	})
	if err != nil {
		return nil, err
	}
	if err := s.db.Preload("Track").First(&entry, entry.ID).Error; err != nil {
		return nil, err
	}

	s.hub.Broadcast(ws.WSMessage{EventType: "track.playing", Data: entry})
	return &entry, nil
}

// Deactivate выключает одну запись, не выбирая новую играющую.
func (s *Service) Deactivate(id uint) (*models.PlaylistTrack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry models.PlaylistTrack
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.db.Model(&entry).Update("is_playing", false).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Track").First(&entry, entry.ID).Error; err != nil {
		return nil, err
	}

	s.hub.Broadcast(ws.WSMessage{EventType: "track.playing", Data: entry})
	return &entry, nil
}

// DeactivateAll выключает все записи (пауза). Преемник не выбирается.
func (s *Service) DeactivateAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Model(&models.PlaylistTrack{}).
		Where("is_playing = ?", true).
		Update("is_playing", false).Error; err != nil {
		return err
	}

	s.hub.Broadcast(ws.WSMessage{EventType: "playback.paused"})
	return nil
}

// Resume уведомляет клиентов о продолжении воспроизведения.
// Состояние записей не меняется — какую включить, решает клиент явно.
func (s *Service) Resume() {
	s.hub.Broadcast(ws.WSMessage{EventType: "playback.resumed"})
}

// Remove удаляет запись из плейлиста. Удаление играющей записи не включает
// следующую автоматически — это отдельное решение вызывающего.
func (s *Service) Remove(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry models.PlaylistTrack
	if err := s.db.Preload("Track").First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.db.Delete(&entry).Error; err != nil {
		return err
	}

	s.hub.Broadcast(ws.WSMessage{EventType: "track.removed", Data: entry})
	return nil
}

// SetAutoSort включает или выключает авто-сортировку по голосам.
// Сама сортировка срабатывает на последующих голосах и добавлениях.
func (s *Service) SetAutoSort(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autoSort = enabled
	s.hub.Broadcast(ws.WSMessage{
		EventType: "playlist.autoSortToggled",
		Data:      map[string]bool{"enabled": enabled},
	})
}

// AutoSort возвращает текущее состояние авто-сортировки.
func (s *Service) AutoSort() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoSort
}

// CompactIfNeeded выполняет профилактическую перенумерацию, если минимальный
// промежуток между соседними позициями стал меньше threshold.
func (s *Service) CompactIfNeeded(threshold float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []models.PlaylistTrack
	if err := s.db.Order("position ASC").Find(&items).Error; err != nil {
		return false, err
	}
	for i := 1; i < len(items); i++ {
		if items[i].Position-items[i-1].Position < threshold {
			if err := s.renumberLocked(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func posOf(e *models.PlaylistTrack) *float64 {
	if e == nil {
		return nil
	}
	return &e.Position
}

func reload(db *gorm.DB, e *models.PlaylistTrack) (*models.PlaylistTrack, error) {
	if e == nil {
		return nil, nil
	}
	var fresh models.PlaylistTrack
	if err := db.First(&fresh, e.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

// resolveNeighbors находит действительно соседние записи целевого места.
// Якорь по ID дополняется фактическим смежным соседом из текущего порядка,
// иначе середина интервала могла бы совпасть с записью, стоящей между
// несмежными якорями, и нарушить уникальность ключей. Сосед nil означает
// границу плейлиста с соответствующей стороны.
func (s *Service) resolveNeighbors(entry *models.PlaylistTrack, target MoveTarget) (prev, next *models.PlaylistTrack, err error) {
	if target.AfterID != nil {
		if *target.AfterID == entry.ID {
			return nil, nil, ErrInvalidTarget
		}
		var p models.PlaylistTrack
		if err := s.db.First(&p, *target.AfterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrNotFound
			}
			return nil, nil, err
		}
		if target.BeforeID != nil {
			if *target.BeforeID == entry.ID {
				return nil, nil, ErrInvalidTarget
			}
			var b models.PlaylistTrack
			if err := s.db.First(&b, *target.BeforeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, nil, ErrNotFound
				}
				return nil, nil, err
			}
			if p.Position >= b.Position {
				return nil, nil, ErrInvalidTarget
			}
		}
		prev = &p
		var n models.PlaylistTrack
		if err := s.db.Where("position > ? AND id != ?", p.Position, entry.ID).
			Order("position ASC").First(&n).Error; err == nil {
			next = &n
		}
		return prev, next, nil
	}

	if target.BeforeID != nil {
		if *target.BeforeID == entry.ID {
			return nil, nil, ErrInvalidTarget
		}
		var n models.PlaylistTrack
		if err := s.db.First(&n, *target.BeforeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrNotFound
			}
			return nil, nil, err
		}
		next = &n
		var p models.PlaylistTrack
		if err := s.db.Where("position < ? AND id != ?", n.Position, entry.ID).
			Order("position DESC").First(&p).Error; err == nil {
			prev = &p
		}
		return prev, next, nil
	}

	if target.Position != nil {
		// Сырая подсказка: соседи определяются по текущим позициям,
		// сама подсказка не используется как готовый ключ.
		hint := *target.Position
		var p models.PlaylistTrack
		if err := s.db.Where("position < ? AND id != ?", hint, entry.ID).
			Order("position DESC").First(&p).Error; err == nil {
			prev = &p
		}
		var n models.PlaylistTrack
		if err := s.db.Where("position >= ? AND id != ?", hint, entry.ID).
			Order("position ASC").First(&n).Error; err == nil {
			next = &n
		}
		return prev, next, nil
	}

	return nil, nil, ErrInvalidTarget
}
