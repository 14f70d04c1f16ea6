package playlist

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"party_playlist/internal/models"
	"party_playlist/internal/storage"
	"party_playlist/internal/ws"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*Service, *ws.Client) {
	t.Helper()

	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		if err := godotenv.Load("../../.env"); err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectTestingDatabase()
	if err := storage.DB.AutoMigrate(&models.Track{}, &models.PlaylistTrack{}, &models.PlayHistory{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}
	storage.DB.Exec("TRUNCATE TABLE tracks, playlist_tracks, play_histories RESTART IDENTITY CASCADE;")

	hub := ws.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	// Тестовый клиент собирает все разосланные события.
	client := &ws.Client{Hub: hub, Send: make(chan []byte, 1024)}
	hub.Register(client)

	return NewService(storage.DB, hub), client
}

func seedTracks(t *testing.T, n int) []models.Track {
	t.Helper()
	tracks := make([]models.Track, 0, n)
	for i := 0; i < n; i++ {
		tracks = append(tracks, models.Track{
			Title:           fmt.Sprintf("Трек %03d", i+1),
			Artist:          "Тестовый исполнитель",
			DurationSeconds: 180,
			Genre:           "Rock",
		})
	}
	require.NoError(t, storage.DB.Create(&tracks).Error)
	return tracks
}

// drainEvents собирает типы событий, пришедшие тестовому клиенту за окно d.
func drainEvents(client *ws.Client, d time.Duration) []string {
	var types []string
	deadline := time.After(d)
	for {
		select {
		case payload, ok := <-client.Send:
			if !ok {
				return types
			}
			var msg ws.WSMessage
			if err := json.Unmarshal(payload, &msg); err == nil {
				types = append(types, msg.EventType)
			}
		case <-deadline:
			return types
		}
	}
}

func countEvents(types []string, want string) int {
	n := 0
	for _, tp := range types {
		if tp == want {
			n++
		}
	}
	return n
}

func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestAddAssignsSequentialPositions(t *testing.T) {
	svc, client := setupService(t)
	tracks := seedTracks(t, 2)

	x, err := svc.Add(tracks[0].ID, "Иван")
	require.NoError(t, err)
	assert.Equal(t, 1.0, x.Position)
	assert.Equal(t, 0, x.Votes)
	assert.False(t, x.IsPlaying)

	y, err := svc.Add(tracks[1].ID, "Пётр")
	require.NoError(t, err)
	assert.Equal(t, 2.0, y.Position)

	// Тот же трек второй раз не добавляется, пока он в плейлисте.
	_, err = svc.Add(tracks[0].ID, "Иван")
	assert.ErrorIs(t, err, ErrDuplicateTrack)

	// Несуществующий трек каталога.
	_, err = svc.Add(99999, "Иван")
	assert.ErrorIs(t, err, ErrNotFound)

	events := drainEvents(client, 200*time.Millisecond)
	assert.Equal(t, 2, countEvents(events, "track.added"))
}

func TestAddAfterRemovalAllowed(t *testing.T) {
	svc, _ := setupService(t)
	tracks := seedTracks(t, 1)

	entry, err := svc.Add(tracks[0].ID, "Иван")
	require.NoError(t, err)
	require.NoError(t, svc.Remove(entry.ID))

	// После удаления трек может вернуться в плейлист.
	_, err = svc.Add(tracks[0].ID, "Пётр")
	assert.NoError(t, err)
}

func TestMoveScenarios(t *testing.T) {
	svc, client := setupService(t)
	tracks := seedTracks(t, 3)

	x, err := svc.Add(tracks[0].ID, "Иван") // 1.0
	require.NoError(t, err)
	y, err := svc.Add(tracks[1].ID, "Иван") // 2.0
	require.NoError(t, err)

	// Перемещение Y за X, где она и так стоит — граничный no-op.
	moved, err := svc.Move(y.ID, MoveTarget{AfterID: uintPtr(x.ID)})
	require.NoError(t, err)
	assert.Equal(t, 2.0, moved.Position)

	// Перемещение Y в начало: на единицу меньше головы.
	moved, err = svc.Move(y.ID, MoveTarget{BeforeID: uintPtr(x.ID)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, moved.Position)

	// Новая запись уходит в хвост, перемещение между Y и X — середина.
	z, err := svc.Add(tracks[2].ID, "Иван") // за хвостом X: 2.0
	require.NoError(t, err)
	assert.Equal(t, 2.0, z.Position)
	moved, err = svc.Move(z.ID, MoveTarget{AfterID: uintPtr(y.ID), BeforeID: uintPtr(x.ID)})
	require.NoError(t, err)
	assert.Equal(t, 0.5, moved.Position)

	// Цель "между записью и ей самой" отклоняется.
	_, err = svc.Move(y.ID, MoveTarget{AfterID: uintPtr(y.ID)})
	assert.ErrorIs(t, err, ErrInvalidTarget)
	_, err = svc.Move(y.ID, MoveTarget{BeforeID: uintPtr(y.ID)})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	// Пустая цель.
	_, err = svc.Move(y.ID, MoveTarget{})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	// Несуществующая запись.
	_, err = svc.Move(99999, MoveTarget{AfterID: uintPtr(x.ID)})
	assert.ErrorIs(t, err, ErrNotFound)

	events := drainEvents(client, 200*time.Millisecond)
	assert.Equal(t, 3, countEvents(events, "track.moved"))
}

func TestMoveByPositionHint(t *testing.T) {
	svc, _ := setupService(t)
	tracks := seedTracks(t, 3)

	x, _ := svc.Add(tracks[0].ID, "Иван") // 1.0
	y, _ := svc.Add(tracks[1].ID, "Иван") // 2.0
	z, _ := svc.Add(tracks[2].ID, "Иван") // 3.0

	// Подсказка между X и Y: соседи определяются по текущим позициям.
	moved, err := svc.Move(z.ID, MoveTarget{Position: floatPtr(1.7)})
	require.NoError(t, err)
	assert.Equal(t, 1.5, moved.Position)

	// Подсказка левее головы — вставка в начало.
	moved, err = svc.Move(y.ID, MoveTarget{Position: floatPtr(0.2)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, moved.Position)

	_ = x
}

func TestRepeatedInsertTriggersRenumber(t *testing.T) {
	svc, client := setupService(t)
	tracks := seedTracks(t, 62)

	a, err := svc.Add(tracks[0].ID, "Иван")
	require.NoError(t, err)
	b, err := svc.Add(tracks[1].ID, "Иван")
	require.NoError(t, err)

	// 60 вставок в один и тот же сужающийся промежуток: точность float64
	// исчерпывается, сервис обязан перенумеровать плейлист и продолжить.
	nextID := b.ID
	for i := 2; i < 62; i++ {
		entry, err := svc.Add(tracks[i].ID, "Иван")
		require.NoError(t, err)
		_, err = svc.Move(entry.ID, MoveTarget{AfterID: uintPtr(a.ID), BeforeID: uintPtr(nextID)})
		require.NoError(t, err, "вставка №%d", i-1)
		nextID = entry.ID
	}

	// Все ключи порядка остались уникальными.
	var items []models.PlaylistTrack
	require.NoError(t, storage.DB.Order("position ASC").Find(&items).Error)
	require.Len(t, items, 62)
	for i := 1; i < len(items); i++ {
		assert.Less(t, items[i-1].Position, items[i].Position,
			"позиции должны строго возрастать: %v и %v", items[i-1].Position, items[i].Position)
	}

	// Перенумерация наблюдаема как консолидированное событие.
	events := drainEvents(client, 500*time.Millisecond)
	assert.GreaterOrEqual(t, countEvents(events, "playlist.reordered"), 1,
		"должна была произойти хотя бы одна перенумерация")
}

func TestActivateExclusive(t *testing.T) {
	svc, client := setupService(t)
	tracks := seedTracks(t, 3)

	a, _ := svc.Add(tracks[0].ID, "Иван")
	b, _ := svc.Add(tracks[1].ID, "Иван")
	svc.Add(tracks[2].ID, "Иван")

	_, err := svc.Activate(a.ID)
	require.NoError(t, err)

	activated, err := svc.Activate(b.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsPlaying)
	require.NotNil(t, activated.PlayedAt)

	// Ровно одна играющая запись, и это B.
	var playing []models.PlaylistTrack
	require.NoError(t, storage.DB.Where("is_playing = ?", true).Find(&playing).Error)
	require.Len(t, playing, 1)
	assert.Equal(t, b.ID, playing[0].ID)

	_, err = svc.Activate(99999)
	assert.ErrorIs(t, err, ErrNotFound)

	events := drainEvents(client, 200*time.Millisecond)
	assert.Equal(t, 2, countEvents(events, "track.playing"))
}

func TestActivateConcurrent(t *testing.T) {
	svc, _ := setupService(t)
	tracks := seedTracks(t, 2)

	a, _ := svc.Add(tracks[0].ID, "Иван")
	b, _ := svc.Add(tracks[1].ID, "Иван")

	// Одновременные включения: в конце играет ровно одна запись —
	// та, чья мутация закоммитилась последней.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		svc.Activate(a.ID)
	}()
	go func() {
		defer wg.Done()
		svc.Activate(b.ID)
	}()
	wg.Wait()

	var count int64
	require.NoError(t, storage.DB.Model(&models.PlaylistTrack{}).
		Where("is_playing = ?", true).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestVoteSymmetry(t *testing.T) {
	svc, client := setupService(t)
	tracks := seedTracks(t, 1)

	entry, _ := svc.Add(tracks[0].ID, "Иван")

	// Голоса не ограничены снизу: down уводит ниже нуля.
	down, err := svc.Vote(entry.ID, Down)
	require.NoError(t, err)
	assert.Equal(t, -1, down.Votes)

	// up возвращает счётчик к нулю.
	up, err := svc.Vote(entry.ID, Up)
	require.NoError(t, err)
	assert.Equal(t, 0, up.Votes)

	_, err = svc.Vote(99999, Up)
	assert.ErrorIs(t, err, ErrNotFound)

	events := drainEvents(client, 200*time.Millisecond)
	assert.Equal(t, 2, countEvents(events, "track.voted"))
}

func TestDeactivateAll(t *testing.T) {
	svc, client := setupService(t)
	tracks := seedTracks(t, 2)

	a, _ := svc.Add(tracks[0].ID, "Иван")
	svc.Add(tracks[1].ID, "Иван")
	_, err := svc.Activate(a.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateAll())

	// Пауза не выбирает преемника.
	var count int64
	require.NoError(t, storage.DB.Model(&models.PlaylistTrack{}).
		Where("is_playing = ?", true).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	events := drainEvents(client, 200*time.Millisecond)
	assert.Equal(t, 1, countEvents(events, "playback.paused"))
}

func TestRemovePlayingDoesNotActivateSuccessor(t *testing.T) {
	svc, client := setupService(t)
	tracks := seedTracks(t, 2)

	a, _ := svc.Add(tracks[0].ID, "Иван")
	svc.Add(tracks[1].ID, "Иван")
	_, err := svc.Activate(a.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(a.ID))

	var count int64
	require.NoError(t, storage.DB.Model(&models.PlaylistTrack{}).
		Where("is_playing = ?", true).Count(&count).Error)
	assert.Equal(t, int64(0), count, "удаление играющей записи не включает следующую")

	assert.ErrorIs(t, svc.Remove(a.ID), ErrNotFound)

	events := drainEvents(client, 200*time.Millisecond)
	assert.Equal(t, 1, countEvents(events, "track.removed"))
}

func TestAutoSortStableOrder(t *testing.T) {
	svc, client := setupService(t)
	tracks := seedTracks(t, 4)

	a, _ := svc.Add(tracks[0].ID, "Иван") // позиции 1..4
	b, _ := svc.Add(tracks[1].ID, "Иван")
	c, _ := svc.Add(tracks[2].ID, "Иван")
	d, _ := svc.Add(tracks[3].ID, "Иван")

	// Голоса: A=1, B=3, C=1, D=2.
	storage.DB.Model(&models.PlaylistTrack{}).Where("id = ?", a.ID).Update("votes", 1)
	storage.DB.Model(&models.PlaylistTrack{}).Where("id = ?", b.ID).Update("votes", 3)
	storage.DB.Model(&models.PlaylistTrack{}).Where("id = ?", c.ID).Update("votes", 1)
	storage.DB.Model(&models.PlaylistTrack{}).Where("id = ?", d.ID).Update("votes", 2)

	svc.SetAutoSort(true)
	assert.True(t, svc.AutoSort())

	// Следующий голос запускает пересортировку: B(2 после down)...
	// down по B оставляет B=2 — ничья с D разрешается прежним порядком.
	_, err := svc.Vote(b.ID, Down)
	require.NoError(t, err)

	items, err := svc.List()
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, []uint{b.ID, d.ID, a.ID, c.ID},
		[]uint{items[0].ID, items[1].ID, items[2].ID, items[3].ID},
		"равные голоса сохраняют прежний относительный порядок")

	events := drainEvents(client, 200*time.Millisecond)
	assert.Equal(t, 1, countEvents(events, "playlist.autoSortToggled"))
	assert.GreaterOrEqual(t, countEvents(events, "playlist.reordered"), 1)
}

func TestAutoSortPinsPlayingEntry(t *testing.T) {
	svc, _ := setupService(t)
	tracks := seedTracks(t, 3)

	a, _ := svc.Add(tracks[0].ID, "Иван")
	b, _ := svc.Add(tracks[1].ID, "Иван")
	c, _ := svc.Add(tracks[2].ID, "Иван")

	_, err := svc.Activate(b.ID)
	require.NoError(t, err)

	svc.SetAutoSort(true)

	// C получает голос и обгоняет A, но играющая B остаётся на своём месте.
	_, err = svc.Vote(c.ID, Up)
	require.NoError(t, err)

	items, err := svc.List()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []uint{c.ID, b.ID, a.ID},
		[]uint{items[0].ID, items[1].ID, items[2].ID})
	assert.True(t, items[1].IsPlaying)
}

func TestAutoSortToleratesMultiplePlayingRows(t *testing.T) {
	svc, _ := setupService(t)
	tracks := seedTracks(t, 4)

	a, _ := svc.Add(tracks[0].ID, "Иван")
	b, _ := svc.Add(tracks[1].ID, "Иван")
	c, _ := svc.Add(tracks[2].ID, "Иван")
	d, _ := svc.Add(tracks[3].ID, "Иван")

	// Исторически испорченное состояние: играют сразу две записи.
	// Эксклюзивность в прошлом могла не соблюдаться, сортировка обязана
	// это пережить.
	storage.DB.Model(&models.PlaylistTrack{}).Where("id = ?", a.ID).Update("is_playing", true)
	storage.DB.Model(&models.PlaylistTrack{}).Where("id = ?", b.ID).Update("is_playing", true)

	svc.SetAutoSort(true)

	// D обгоняет C, обе играющие записи остаются на своих местах.
	_, err := svc.Vote(d.ID, Up)
	require.NoError(t, err)

	items, err := svc.List()
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, []uint{a.ID, b.ID, d.ID, c.ID},
		[]uint{items[0].ID, items[1].ID, items[2].ID, items[3].ID})
	assert.True(t, items[0].IsPlaying)
	assert.True(t, items[1].IsPlaying)
}

func TestCompactIfNeeded(t *testing.T) {
	svc, client := setupService(t)
	tracks := seedTracks(t, 2)

	a, _ := svc.Add(tracks[0].ID, "Иван")
	b, _ := svc.Add(tracks[1].ID, "Иван")

	// Искусственно сжимаем промежуток ниже порога.
	storage.DB.Model(&models.PlaylistTrack{}).Where("id = ?", a.ID).Update("position", 1.0)
	storage.DB.Model(&models.PlaylistTrack{}).Where("id = ?", b.ID).Update("position", 1.0+1e-9)

	compacted, err := svc.CompactIfNeeded(1e-6)
	require.NoError(t, err)
	assert.True(t, compacted)

	items, err := svc.List()
	require.NoError(t, err)
	assert.Equal(t, 1.0, items[0].Position)
	assert.Equal(t, 2.0, items[1].Position)

	// Повторный вызов без сжатия — ничего не делает.
	compacted, err = svc.CompactIfNeeded(1e-6)
	require.NoError(t, err)
	assert.False(t, compacted)

	events := drainEvents(client, 200*time.Millisecond)
	assert.Equal(t, 1, countEvents(events, "playlist.reordered"))
}
