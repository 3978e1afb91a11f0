package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salonsuite/salon-scheduler/internal/config"
	dbpkg "github.com/salonsuite/salon-scheduler/internal/db"
	"github.com/salonsuite/salon-scheduler/internal/lock"
	"github.com/salonsuite/salon-scheduler/internal/middleware"
	"github.com/salonsuite/salon-scheduler/internal/notify"
	"github.com/salonsuite/salon-scheduler/internal/payment"
	"github.com/salonsuite/salon-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	redisClient, err := lock.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	var payments payment.Authorizer = payment.Disabled{}
	if cfg.MPAccessToken != "" {
		mp, err := payment.NewMercadoPago(cfg.MPAccessToken)
		if err != nil {
			log.Fatalf("failed to init payment gateway: %v", err)
		}
		payments = mp
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, cfg, routes.Deps{
		DB:       db,
		Locker:   lock.NewRedisBookingLocker(redisClient, cfg.LockTTL),
		Payments: payments,
		Mailer:   notify.NewMailer(cfg.SendgridAPIKey, cfg.MailFromName, cfg.MailFromAddr),
	})

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
