package service

import (
	"github.com/redis/go-redis/v9"

	"garasiku/internal/config"
	"garasiku/internal/repository"
	"garasiku/internal/service/changefeed"
	"garasiku/internal/service/email"
	"garasiku/internal/service/notification"
	"garasiku/internal/service/transfer"
	"garasiku/internal/service/vehicle"
)

type Services struct {
	Transfer     transfer.Service
	Vehicle      vehicle.Service
	Notification notification.Service
	Email        email.Transport
	Feed         *changefeed.Feed
}

func NewServices(store *repository.Store, redisClient *redis.Client, cfg *config.Config) *Services {
	emailTransport := email.NewService(cfg)
	feed := changefeed.New(redisClient)

	notificationService := notification.NewService(store, redisClient, emailTransport, feed)
	transferService := transfer.NewService(
		store,
		store.Repos().User,
		notificationService,
		feed,
		cfg.TransferTTL,
		cfg.NotificationTTL,
	)
	vehicleService := vehicle.NewService(store)

	return &Services{
		Transfer:     transferService,
		Vehicle:      vehicleService,
		Notification: notificationService,
		Email:        emailTransport,
		Feed:         feed,
	}
}
