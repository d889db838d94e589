package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"remindbot/config"
	"remindbot/handlers"
	"remindbot/models"
	"remindbot/routes"
	"remindbot/services"
	"remindbot/session"
	"remindbot/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	root := &cobra.Command{
		Use:   "remindbot",
		Short: "Telegram reminder and to-do bot",
	}
	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := config.ConnectDB(cfg.DBURL)
			if err != nil {
				return err
			}
			if err := autoMigrate(db); err != nil {
				return err
			}
			log.Println("Tables `users`, `reminders` and `activities` are up to date")
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot (long polling, or webhook when WEBHOOK_URL is set)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Reminder{},
		&models.Activity{},
	)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.ConnectDB(cfg.DBURL)
	if err != nil {
		return err
	}
	if err := autoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	users := store.NewUserStore(db, cfg.DefaultTimezone)
	reminders := store.NewReminderStore(db)

	var sessions session.Store
	if cfg.RedisAddr != "" {
		rdb, err := config.ConnectRedis(cfg)
		if err != nil {
			return err
		}
		sessions = session.NewRedisStore(rdb)
	} else {
		log.Println("REDIS_ADDR not set, sessions will not survive a restart")
		sessions = session.NewMemoryStore()
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("connect telegram: %w", err)
	}
	log.Printf("Authorized on account %s", bot.Self.UserName)

	dispatcher := services.NewDispatcher(&telegramMessenger{bot: bot}, users, services.NewTwilioNotifier())
	sched := services.NewScheduler(dispatcher.Deliver)
	defer sched.Stop()

	// Recovery must finish before any update is handled, so a freshly created
	// reminder cannot collide with a not-yet-restored one.
	if _, _, err := services.RestoreTimers(context.Background(), reminders, sched); err != nil {
		return fmt.Errorf("recovery: %w", err)
	}

	resync := services.StartResync(reminders, sched)
	defer resync.Stop()

	setCommands(bot)

	h := handlers.New(bot, users, reminders, sessions, sched, cfg.DefaultTimezone)

	if cfg.WebhookURL != "" {
		return runWebhook(cfg, bot, h)
	}
	return runPolling(bot, h)
}

func runPolling(bot *tgbotapi.BotAPI, h *handlers.Handler) error {
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Printf("delete webhook: %v", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	log.Println("Polling for updates...")
	for update := range bot.GetUpdatesChan(u) {
		go h.HandleUpdate(context.Background(), update)
	}
	return nil
}

func runWebhook(cfg *config.Config, bot *tgbotapi.BotAPI, h *handlers.Handler) error {
	wh, err := tgbotapi.NewWebhook(cfg.WebhookURL + "/webhook")
	if err != nil {
		return fmt.Errorf("webhook config: %w", err)
	}
	if _, err := bot.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}

	r := routes.SetupRouter(h)
	log.Printf("Webhook set, listening on :%s", cfg.Port)
	return r.Run(":" + cfg.Port)
}

func setCommands(bot *tgbotapi.BotAPI) {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "r", Description: "create a reminder"},
		tgbotapi.BotCommand{Command: "list", Description: "show your reminders"},
		tgbotapi.BotCommand{Command: "time", Description: "set your timezone"},
		tgbotapi.BotCommand{Command: "stats", Description: "your activity"},
		tgbotapi.BotCommand{Command: "cancel", Description: "abort the current dialog"},
		tgbotapi.BotCommand{Command: "help", Description: "list commands"},
	)
	if _, err := bot.Request(cmds); err != nil {
		log.Printf("set commands: %v", err)
	}
}

// telegramMessenger adapts the bot client to the dispatcher's outbound port.
type telegramMessenger struct {
	bot *tgbotapi.BotAPI
}

func (m *telegramMessenger) SendText(chatID int64, text string) error {
	_, err := m.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
