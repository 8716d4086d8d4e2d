// Package telemetry обеспечивает наблюдаемость сервиса.
//
// Включает structured logging через slog (logging.go); Prometheus
// метрики объявляются по месту использования (internal/api,
// cmd/flowdoc-api).
// Все компоненты используют единый формат логирования.
package telemetry
