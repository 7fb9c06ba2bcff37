package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/go-telegram/bot"
	"github.com/msolovieva/tg-cycle-companion/pkg/bot/handlers"
	"github.com/msolovieva/tg-cycle-companion/pkg/bot/reminders"
	"github.com/msolovieva/tg-cycle-companion/pkg/config"
	"github.com/msolovieva/tg-cycle-companion/pkg/db"
	"github.com/msolovieva/tg-cycle-companion/pkg/httpapi"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

func main() {
	if err := config.LoadConfig("config.json"); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := logger.Configure(logger.Options{
		Level: config.AppConfig.Logging.Level,
		File:  config.AppConfig.Logging.File,
	}); err != nil {
		logger.Error("failed to configure logger", "error", err)
	}

	if err := db.InitDB(config.AppConfig.Database); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	opts := []bot.Option{
		bot.WithDefaultHandler(handlers.DefaultHandler),
	}
	b, err := bot.New(config.AppConfig.Telegram.Token, opts...)
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, handlers.HandleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/log", bot.MatchTypePrefix, handlers.HandleLogPeriod)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypeExact, handlers.HandleStatus)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/predict", bot.MatchTypeExact, handlers.HandlePredict)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypeExact, handlers.HandleStats)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/history", bot.MatchTypeExact, handlers.HandleHistory)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/editlast", bot.MatchTypePrefix, handlers.HandleEditLast)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/deletelast", bot.MatchTypeExact, handlers.HandleDeleteLast)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/setcycle", bot.MatchTypePrefix, handlers.HandleSetCycle)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/export", bot.MatchTypeExact, handlers.HandleExport)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/reminders", bot.MatchTypeExact, handlers.HandleReminders)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "r:", bot.MatchTypePrefix, handlers.HandleRemindersCallback)

	go reminders.StartPeriodicMessages(ctx, b)

	if config.AppConfig.HTTP.Enabled {
		go httpapi.Serve(ctx, config.AppConfig.HTTP.Addr, config.AppConfig.HTTP.JWTSecret)
	}

	logger.Info("Starting bot...")
	b.Start(ctx)
}
