package response

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Message string `json:"message" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Трек не найден
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: record not found
	Details string `json:"details,omitempty"`
}

// StatusResponse представляет ответ о состоянии воспроизведения
type StatusResponse struct {
	Status string `json:"status" example:"paused"`
}

// AutoSortResponse представляет текущее состояние авто-сортировки
type AutoSortResponse struct {
	AutoSort bool `json:"auto_sort"`
}
