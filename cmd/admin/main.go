// Package main содержит точку входа административной CLI-утилиты.
//
// Пакет отвечает за запуск консольной утилиты и передачу информации о версии и дате сборки в CLI-слой приложения.
package main

import "github.com/IvanChernomyrdin/go-finance-tracker/internal/admin/cli"

var (
	// buildVersion содержит версию приложения, передаваемую при сборке.
	// По умолчанию используется значение "dev".
	buildVersion = "dev"
	// buildDate содержит дату сборки, передаваемую при сборке.
	buildDate = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
