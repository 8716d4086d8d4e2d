// Package importer разбирает полуструктурированную таблицу xlsx
// в граф сценария.
//
// Структура:
//   - xlsx.go        — чтение книги и выбор листа (excelize)
//   - importer.go    — поиск заголовка, разрешение колонок, извлечение
//     строк, сортировка, вывод типов шагов
//   - transitions.go — поиск переходов в свободном тексте и политика
//     достройки рёбер
//   - patterns.go    — таблица локализуемых эвристик
//   - errors.go      — sentinel-ошибки импорта
//
// Сам разбор таблицы — чистая функция поверх [][]string: файл читает
// отдельная функция-коллаборатор, сохраняет результат вызывающий код.
package importer
