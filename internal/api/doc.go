// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go         — Handler с DI (репозитории, publisher, logger)
//   - routes.go          — регистрация маршрутов
//   - middleware.go      — middleware (logging, recovery)
//   - response.go        — унифицированные JSON-ответы и обработка ошибок
//   - dto.go             — Data Transfer Objects (request/response)
//   - spec_handler.go    — обработчики для /specs
//   - version_handler.go — обработчики для /versions (форк, статус, дифф)
//   - graph_handler.go   — обработчики графа (чтение, замена, импорт)
//   - user_handler.go    — обработчики для /users
//
// API предоставляет REST endpoints для управления спецификациями,
// их версиями и графами сценариев.
package api
