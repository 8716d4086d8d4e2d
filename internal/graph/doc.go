// Package graph содержит проверки инвариантов снапшота
// (уникальность ключей шагов, существование концов переходов).
package graph
