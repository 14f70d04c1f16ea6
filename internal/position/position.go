// Package position вычисляет ключи порядка для вставки записей плейлиста
// между соседями без перезаписи всего списка.
package position

// Seed — ключ первой записи в пустом плейлисте.
const Seed = 1.0

// Calculate вычисляет ключ порядка для вставки между двумя соседями.
// prev == nil — вставка в начало (next - 1), next == nil — в конец (prev + 1),
// оба nil — первая запись (Seed). Иначе — среднее арифметическое.
func Calculate(prev, next *float64) float64 {
	switch {
	case prev == nil && next == nil:
		return Seed
	case prev == nil:
		return *next - 1
	case next == nil:
		return *prev + 1
	default:
		return (*prev + *next) / 2
	}
}

// Between проверяет, что ключ строго внутри интервала соседей.
// Повторные вставки в один и тот же промежуток исчерпывают точность float64,
// и середина совпадает с границей — это сигнал к перенумерации всего списка.
func Between(key float64, prev, next *float64) bool {
	if prev != nil && key <= *prev {
		return false
	}
	if next != nil && key >= *next {
		return false
	}
	return true
}
