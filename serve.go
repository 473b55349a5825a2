package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/FlorianPALVADEAU/Overbound-sub003/config"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/auth"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/consumer"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/handler"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/middleware"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/notify"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/repository"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/service"
	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/database"
	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/mailer"
	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/obs"
	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/payment"
	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/rabbitmq"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db := database.NewPostgresDB(cfg.DSN())
	if err := database.Migrate(db); err != nil {
		return err
	}

	shutdownTracer := obs.InitTracer(ctx, serviceName, cfg.OTLPEndpoint, cfg.Env)
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("[OTel] shutdown: %v", err)
		}
	}()

	email := notify.NewEmailNotifier(newMailSender(cfg))
	notifier, closeNotifier, err := newNotifier(ctx, cfg, email)
	if err != nil {
		return err
	}
	defer closeNotifier()

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	regRepo := repository.NewRegistrationRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	promoRepo := repository.NewPromoCodeRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	requestLogRepo := repository.NewRequestLogRepository(db)

	// Services
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	eventSvc := service.NewEventService(eventRepo, regRepo)
	ticketSvc := service.NewTicketService(ticketRepo, eventRepo, regRepo)
	promoSvc := service.NewPromoService(promoRepo, eventRepo, ticketRepo)
	regSvc := service.NewRegistrationService(regRepo, ticketRepo)
	fulfillmentSvc := service.NewFulfillmentService(orderRepo, eventRepo, ticketRepo, regRepo, promoRepo, gateway, notifier)
	checkoutSvc := service.NewCheckoutService(eventRepo, ticketRepo, regRepo, promoSvc, fulfillmentSvc, gateway, service.CheckoutURLs{
		Success: cfg.SuccessURL(),
		Cancel:  cfg.CancelURL(),
	})

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	})

	api := e.Group("/api/v1", middleware.RequestLog(requestLogRepo))
	authn := middleware.Authenticate(auth.NewVerifier(cfg.JWTSecret), profileRepo)

	handler.NewEventHandler(eventSvc).RegisterRoutes(api, authn)
	handler.NewTicketHandler(ticketSvc).RegisterRoutes(api, authn)
	handler.NewCheckoutHandler(checkoutSvc, fulfillmentSvc).RegisterRoutes(api, authn)
	handler.NewRegistrationHandler(regSvc).RegisterRoutes(api, authn)
	handler.NewPromoHandler(promoSvc).RegisterRoutes(api, authn)
	handler.NewAdminHandler(orderRepo, requestLogRepo).RegisterRoutes(api, authn)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("%s starting on :%s", serviceName, cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newMailSender(cfg *config.Config) mailer.Sender {
	if cfg.MailerSendAPIKey == "" {
		log.Printf("[Mailer] MAILERSEND_API_KEY not set, emails are only logged")
		return mailer.LogSender{}
	}
	return mailer.NewMailerSend(cfg.MailerSendAPIKey, cfg.MailFromEmail, cfg.MailFromName)
}

// newNotifier sends confirmations straight from the fulfillment path, or through
// RabbitMQ when a broker is configured. The returned func releases connections.
func newNotifier(ctx context.Context, cfg *config.Config, email *notify.EmailNotifier) (notify.Notifier, func(), error) {
	var notifiers notify.Multi
	cleanup := func() {}

	if cfg.RabbitURL == "" {
		notifiers = append(notifiers, email)
	} else {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect publisher: %w", err)
		}
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			pub.Close()
			return nil, nil, fmt.Errorf("connect consumer: %w", err)
		}
		msgs, err := mqConsumer.Consume()
		if err != nil {
			pub.Close()
			mqConsumer.Close()
			return nil, nil, fmt.Errorf("start consuming: %w", err)
		}
		consumer.NewNotificationConsumer(email).Start(ctx, msgs)

		notifiers = append(notifiers, notify.NewBrokerNotifier(pub))
		cleanup = func() {
			mqConsumer.Close()
			pub.Close()
		}
	}

	if cfg.TelegramBotToken != "" {
		alerter, err := notify.NewTelegramAlerter(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
		if err != nil {
			log.Printf("[Telegram] disabled: %v", err)
		} else {
			notifiers = append(notifiers, alerter)
		}
	}
	return notifiers, cleanup, nil
}
