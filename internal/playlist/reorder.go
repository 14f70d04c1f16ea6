package playlist

import (
	"sort"

	"party_playlist/internal/models"
	"party_playlist/internal/ws"

	"gorm.io/gorm"
)

// renumberLocked присваивает всем записям целые позиции 1..n в текущем
// видимом порядке. Выполняется одной транзакцией и рассылает одно
// консолидированное событие playlist.reordered, а не событие на запись.
// Вызывается только под мьютексом сервиса.
func (s *Service) renumberLocked() error {
	var items []models.PlaylistTrack
	if err := s.db.Preload("Track").Order("position ASC").Find(&items).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			items[i].Position = float64(i + 1)
			if err := tx.Model(&models.PlaylistTrack{}).
				Where("id = ?", items[i].ID).
				Update("position", items[i].Position).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.hub.Broadcast(ws.WSMessage{
		EventType: "playlist.reordered",
		Data:      map[string]interface{}{"items": items},
	})
	return nil
}

// resortLocked пересортировывает неиграющие записи по убыванию голосов,
// если включена авто-сортировка. Сортировка стабильная: при равных голосах
// сохраняется прежний относительный порядок. Играющие записи остаются на
// своих местах и в сортировке не участвуют — на флаг IsPlaying нельзя
// полагаться как на единственный: исторические данные могли нарушать
// эксклюзивность воспроизведения.
func (s *Service) resortLocked() error {
	if !s.autoSort {
		return nil
	}

	var items []models.PlaylistTrack
	if err := s.db.Preload("Track").Order("position ASC").Find(&items).Error; err != nil {
		return err
	}
	if len(items) < 2 {
		return nil
	}

	rest := make([]models.PlaylistTrack, 0, len(items))
	for _, it := range items {
		if it.IsPlaying {
			continue
		}
		rest = append(rest, it)
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Votes > rest[j].Votes
	})

	reordered := make([]models.PlaylistTrack, 0, len(items))
	for i := 0; i < len(items); i++ {
		if items[i].IsPlaying {
			reordered = append(reordered, items[i])
			continue
		}
		reordered = append(reordered, rest[0])
		rest = rest[1:]
	}

	changed := false
	for i := range items {
		if items[i].ID != reordered[i].ID {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range reordered {
			reordered[i].Position = float64(i + 1)
			if err := tx.Model(&models.PlaylistTrack{}).
				Where("id = ?", reordered[i].ID).
				Update("position", reordered[i].Position).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.hub.Broadcast(ws.WSMessage{
		EventType: "playlist.reordered",
		Data:      map[string]interface{}{"items": reordered},
	})
	return nil
}
