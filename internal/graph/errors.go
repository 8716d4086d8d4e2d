package graph

import "errors"

// Ошибки валидации снапшота.
var (
	// ErrEmptyStepKey — шаг без ключа.
	ErrEmptyStepKey = errors.New("step has empty key")

	// ErrDuplicateStepKey — несколько шагов с одинаковым ключом.
	ErrDuplicateStepKey = errors.New("duplicate step key")

	// ErrUnknownStepType — неизвестный тип шага.
	ErrUnknownStepType = errors.New("unknown step type")

	// ErrDanglingTransition — переход ссылается на несуществующий шаг.
	ErrDanglingTransition = errors.New("transition references unknown step")
)

// ValidationError — ошибка валидации с контекстом.
type ValidationError struct {
	StepKey string // ключ шага, к которому относится ошибка
	Field   string // поле, вызвавшее ошибку
	Message string // описание ошибки
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	if e.StepKey != "" {
		return "step " + e.StepKey + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError создаёт новую ошибку валидации.
func NewValidationError(stepKey, field, message string, err error) *ValidationError {
	return &ValidationError{
		StepKey: stepKey,
		Field:   field,
		Message: message,
		Err:     err,
	}
}
