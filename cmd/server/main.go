package main

import (
	"fmt"
	"log"
	"log/slog"

	"engler-house/internal/config"
	"engler-house/internal/database"
	"engler-house/internal/handlers"
	"engler-house/internal/logging"
	"engler-house/internal/notify"
	"engler-house/internal/repositories"
	"engler-house/internal/server"
	"engler-house/internal/services"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel)

	if err := database.Init(cfg.DBDSN, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("database error: %v", err)
	}
	db := database.DB

	content := repositories.NewContentRepository(db)
	users := repositories.NewUserRepository(db)
	orders := repositories.NewOrderRepository(db)
	inquiries := repositories.NewInquiryRepository(db)

	if cfg.Mail.Host == "" {
		slog.Warn("MAIL_HOST is not set, emails will only be logged")
	}
	dispatcher := notify.NewDispatcher(notify.NewMailer(cfg.Mail), cfg.SiteURL)

	accounts := services.NewAccountService(users, dispatcher, cfg.Mail.SendCredentials)
	h := handlers.New(
		db,
		services.NewPageService(content),
		services.NewOrderService(orders, users, dispatcher),
		accounts,
		services.NewInquiryService(inquiries, dispatcher, cfg.Mail.InquiryRecipient()),
		services.NewReviewService(content),
		content,
	)

	r := server.NewRouter(cfg, h, accounts)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	slog.Info("starting server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
