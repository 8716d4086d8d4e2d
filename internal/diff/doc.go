// Package diff сравнивает два снапшота графа сценария.
//
// Результат — структурная разница: добавленные/удалённые/изменённые
// шаги и добавленные/удалённые переходы. UI использует её для
// подсветки изменений между версиями.
//
// Движок чистый: без I/O, без мутаций входов, безопасен для
// параллельных вызовов.
package diff
