// Package mq публикует доменные события в RabbitMQ.
//
// События (spec.created, version.created, version.published,
// version.imported) уходят в topic-обменник flowdoc.events.
// Потребителей внутри сервиса нет: события предназначены внешним
// коллабораторам (уведомления, пересборка отображений).
package mq
