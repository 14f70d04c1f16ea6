package models

import (
	"time"

	"gorm.io/gorm"
)

// Track — трек из музыкального каталога. Каталог только для чтения,
// заполняется сидером при первом запуске.
type Track struct {
	gorm.Model
	Title           string `gorm:"index;not null"` // Название трека
	Artist          string `gorm:"not null"`       // Исполнитель
	Album           string // Альбом (может отсутствовать)
	DurationSeconds int    `gorm:"not null"` // Длительность в секундах
	Genre           string `gorm:"index"`    // Жанр
}

// PlaylistTrack — запись общего плейлиста. Position задаёт видимый порядок
// (сортировка по возрастанию), дробные значения позволяют вставку между
// соседями без перезаписи всего списка.
type PlaylistTrack struct {
	gorm.Model
	TrackID   uint       `gorm:"index;not null"`
	Track     Track      `gorm:"foreignKey:TrackID"`
	Position  float64    `gorm:"index;not null"` // Ключ порядка, уникален в пределах плейлиста
	Votes     int        `gorm:"default:0"`      // Счётчик голосов, без ограничений снизу и сверху
	IsPlaying bool       `gorm:"default:false"`  // Флаг "сейчас играет", не более одного на весь плейлист
	PlayedAt  *time.Time // Момент последнего включения (nil — трек ещё не играл)
	AddedBy   string     `gorm:"not null"` // Имя добавившего участника
}

// PlayHistory — журнал воспроизведения (append-only). Используется для
// дедупликации повторных отметок и для снапшота новым подключениям.
type PlayHistory struct {
	gorm.Model
	TrackID  uint      `gorm:"index;not null"`
	Track    Track     `gorm:"foreignKey:TrackID"`
	PlayedBy string    `gorm:"index;not null"`
	PlayedAt time.Time `gorm:"index;not null"`
}
