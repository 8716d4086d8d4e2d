// Package cli реализует инструмент командной строки Flowdoc.
//
// CLI — клиентская утилита для взаимодействия с Flowdoc API.
// Работает через HTTP, не импортирует внутренние пакеты сервиса.
//
// Client инкапсулирует HTTP-запросы и разбор ответов
// (DataResponse, ListResponse, ErrorResponse):
//
//	client := cli.NewClient("http://localhost:8080")
//	specs, err := client.ListSpecs()
//
// Output форматирует вывод: таблицы через tabwriter по умолчанию,
// JSON с флагом --json. Данные идут в stdout, сообщения — в stderr,
// поэтому вывод можно передавать в pipe: flowdoc spec list --json | jq .
//
// Cobra-команды организованы по ресурсам: spec, version, user.
package cli
