package storage

import (
	"log"

	"party_playlist/internal/models"
)

var catalog = []models.Track{
	{Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera", DurationSeconds: 355, Genre: "Rock"},
	{Title: "Stairway to Heaven", Artist: "Led Zeppelin", Album: "Led Zeppelin IV", DurationSeconds: 482, Genre: "Rock"},
	{Title: "Hotel California", Artist: "Eagles", Album: "Hotel California", DurationSeconds: 391, Genre: "Rock"},
	{Title: "Smells Like Teen Spirit", Artist: "Nirvana", Album: "Nevermind", DurationSeconds: 301, Genre: "Rock"},
	{Title: "Blinding Lights", Artist: "The Weeknd", Album: "After Hours", DurationSeconds: 200, Genre: "Pop"},
	{Title: "Shape of You", Artist: "Ed Sheeran", Album: "÷ (Divide)", DurationSeconds: 233, Genre: "Pop"},
	{Title: "Levitating", Artist: "Dua Lipa", Album: "Future Nostalgia", DurationSeconds: 203, Genre: "Pop"},
	{Title: "Bad Guy", Artist: "Billie Eilish", Album: "When We All Fall Asleep", DurationSeconds: 194, Genre: "Pop"},
	{Title: "HUMBLE.", Artist: "Kendrick Lamar", Album: "DAMN.", DurationSeconds: 177, Genre: "Hip-Hop"},
	{Title: "Sicko Mode", Artist: "Travis Scott", Album: "Astroworld", DurationSeconds: 312, Genre: "Hip-Hop"},
	{Title: "Lose Yourself", Artist: "Eminem", Album: "8 Mile Soundtrack", DurationSeconds: 326, Genre: "Hip-Hop"},
	{Title: "Strobe", Artist: "Deadmau5", Album: "For Lack of a Better Name", DurationSeconds: 636, Genre: "Electronic"},
	{Title: "Wake Me Up", Artist: "Avicii", Album: "True", DurationSeconds: 247, Genre: "Electronic"},
	{Title: "One More Time", Artist: "Daft Punk", Album: "Discovery", DurationSeconds: 320, Genre: "Electronic"},
	{Title: "Take Five", Artist: "Dave Brubeck", Album: "Time Out", DurationSeconds: 324, Genre: "Jazz"},
	{Title: "So What", Artist: "Miles Davis", Album: "Kind of Blue", DurationSeconds: 563, Genre: "Jazz"},
	{Title: "Clair de Lune", Artist: "Claude Debussy", Album: "Suite Bergamasque", DurationSeconds: 300, Genre: "Classical"},
	{Title: "Moonlight Sonata", Artist: "Ludwig van Beethoven", Album: "Piano Sonata No. 14", DurationSeconds: 360, Genre: "Classical"},
	{Title: "Superstition", Artist: "Stevie Wonder", Album: "Talking Book", DurationSeconds: 245, Genre: "R&B"},
	{Title: "Redbone", Artist: "Childish Gambino", Album: "Awaken, My Love!", DurationSeconds: 327, Genre: "R&B"},
}

// SeedTracks заполняет каталог треков при первом запуске.
// Если каталог уже не пуст — ничего не делает.
func SeedTracks() {
	var count int64
	if err := DB.Model(&models.Track{}).Count(&count).Error; err != nil {
		log.Println("Ошибка проверки каталога:", err)
		return
	}
	if count > 0 {
		return
	}
	if err := DB.Create(&catalog).Error; err != nil {
		log.Println("Ошибка заполнения каталога:", err)
		return
	}
	log.Printf("Каталог заполнен: %d треков\n", len(catalog))
}
