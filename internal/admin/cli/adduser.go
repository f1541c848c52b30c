package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/repository"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/service"
)

// NewAddUserCmd создаёт CLI-команду для заведения пользователя напрямую в базе.
//
// Команда подключается к базе по DSN из серверного конфига и использует
// ту же бизнес-логику регистрации, что и HTTP-эндпоинт: те же проверки
// email и тот же хэшер пароля.
//
// Пароль можно передать флагом --password; если флаг не указан,
// пароль запрашивается с терминала без эха.
//
// Пример использования:
//
//	fintrack-admin adduser --email test@example.com
func NewAddUserCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Создать пользователя напрямую в базе",
		Long: `Создание пользователя.

Пример:
  fintrack-admin adduser --email test@example.com
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return fmt.Errorf("не удалось прочитать пароль: %w", err)
				}
				password = strings.TrimSpace(string(raw))
			}

			// подключаемся к той же базе, что и сервер
			if err := config.Init(app.Cfg.DB.DSN, app.Cfg.Migrations.Path); err != nil {
				return err
			}
			db := config.GetDB()
			defer db.Close()

			users := repository.NewUsersRepository(db)
			auth := service.NewAuthService(users, app.Cfg)

			res, err := auth.Register(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user created: %s (%s)\n", res.User.Email, res.User.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email нового пользователя")
	cmd.Flags().StringVar(&password, "password", "", "пароль (если не задан — будет запрошен)")
	cmd.MarkFlagRequired("email")

	return cmd
}
