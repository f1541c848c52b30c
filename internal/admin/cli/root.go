// Package cli реализует командный интерфейс (CLI) административной утилиты FinTrack.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку серверного конфига (DSN базы, параметры хэширования);
//   - выполнение команд и вывод результата оператору.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
)

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// Экземпляр App создаётся при построении root-команды и передаётся в подкоманды.
type App struct {
	// ConfigPath — путь к server.yaml (тот же конфиг, что у сервера).
	ConfigPath string
	// Cfg — загруженный конфиг. Заполняется в PersistentPreRunE.
	Cfg *config.Config
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE загружаются .env и серверный конфиг.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "fintrack-admin",
		Short: "FinTrack admin CLI — обслуживание сервера учёта финансов",
		Long: `FinTrack admin CLI.

Команды:
  adduser   Создать пользователя напрямую в базе
  version   Версия и дата сборки

Примеры:

Создание пользователя (пароль будет запрошен с терминала):
  fintrack-admin adduser --email test@example.com
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			// .env может содержать DATABASE_DSN и JWT_SIGNING_KEY
			_ = godotenv.Load()

			cfg, err := config.Load(app.ConfigPath)
			if err != nil {
				return err
			}
			app.Cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "./configs/server.yaml", "путь к server.yaml")

	cmd.AddCommand(NewAddUserCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает root-команду и завершает процесс с кодом 1 при ошибке.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
