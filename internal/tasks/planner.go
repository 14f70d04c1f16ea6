package tasks

import (
	"log"
	"time"

	"party_playlist/internal/history"
	"party_playlist/internal/playlist"

	"github.com/robfig/cron/v3"
)

// Возраст, после которого записи журнала воспроизведения удаляются.
// Журнал — ограниченное окно для снапшотов, а не вечный архив.
const historyRetention = 7 * 24 * time.Hour

// Минимальный промежуток между позициями, ниже которого плейлист
// перенумеровывается профилактически, не дожидаясь коллизии.
const minPositionGap = 1e-6

// PruneHistory удаляет устаревшие записи журнала воспроизведения.
func PruneHistory(hist *history.Service) {
	removed, err := hist.PruneOlderThan(historyRetention)
	if err != nil {
		log.Println("Ошибка очистки журнала воспроизведения:", err)
		return
	}
	if removed > 0 {
		log.Printf("Журнал воспроизведения очищен: удалено %d записей\n", removed)
	}
}

// CompactPlaylist проверяет запас точности позиций и при необходимости
// перенумеровывает плейлист в тихие часы.
func CompactPlaylist(pl *playlist.Service) {
	compacted, err := pl.CompactIfNeeded(minPositionGap)
	if err != nil {
		log.Println("Ошибка профилактической перенумерации:", err)
		return
	}
	if compacted {
		log.Println("Плейлист перенумерован профилактически.")
	}
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler(pl *playlist.Service, hist *history.Service) *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Очистка журнала каждый день в 03:00.
	_, err := c.AddFunc("0 0 3 * * *", func() { PruneHistory(hist) })
	if err != nil {
		log.Println("Ошибка запуска cron-задачи PruneHistory:", err)
	}

	// Проверка запаса точности позиций каждый день в 04:00.
	_, err = c.AddFunc("0 0 4 * * *", func() { CompactPlaylist(pl) })
	if err != nil {
		log.Println("Ошибка запуска cron-задачи CompactPlaylist:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
