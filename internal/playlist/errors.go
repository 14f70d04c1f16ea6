package playlist

import "errors"

// Ошибки уровня сервиса, различаемые обработчиками через errors.Is.
// Коллизия ключа порядка наружу не выходит — она разрешается перенумерацией
// внутри самой операции.
var (
	// ErrNotFound — запись или трек с указанным идентификатором не существует.
	ErrNotFound = errors.New("запись не найдена")
	// ErrDuplicateTrack — трек уже есть в плейлисте.
	ErrDuplicateTrack = errors.New("трек уже в плейлисте")
	// ErrInvalidTarget — некорректная цель перемещения (например, между записью и ей самой).
	ErrInvalidTarget = errors.New("некорректная цель перемещения")
)
