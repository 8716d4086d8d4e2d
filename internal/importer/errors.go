package importer

import "errors"

// Ошибки импорта таблицы.
var (
	// ErrNoHeaderFound — в таблице не найдена строка-заголовок.
	ErrNoHeaderFound = errors.New("header row not found")

	// ErrMissingRequiredColumns — нет колонки номера или названия шага.
	ErrMissingRequiredColumns = errors.New("required columns missing")

	// ErrNoStepsFound — после заголовка не нашлось ни одной строки с шагом.
	ErrNoStepsFound = errors.New("no steps found")
)

// ImportError — ошибка импорта с контекстом.
// Оборачивает одну из sentinel-ошибок выше.
type ImportError struct {
	Message string // описание для пользователя
	Row     int    // номер строки таблицы (0-based, -1 если неприменимо)
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ImportError) Error() string {
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ImportError) Unwrap() error {
	return e.Err
}

func newImportError(err error, row int, message string) *ImportError {
	return &ImportError{
		Message: message,
		Row:     row,
		Err:     err,
	}
}
