package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/navmark/navmark/config"
	"github.com/navmark/navmark/pkg/helpers"
	"github.com/navmark/navmark/pkg/mailer"
)

// mailworker drains the email queue and delivers through Mailgun. Failed
// deliveries are requeued once; poison messages are dropped with a log line.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-mailworker", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.WithError(err).Fatal("connecting to rabbitmq failed")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.WithError(err).Fatal("opening channel failed")
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		logger.WithError(err).Fatal("declaring queue failed")
	}
	if err := ch.Qos(1, 0, false); err != nil {
		logger.WithError(err).Fatal("setting qos failed")
	}

	deliveries, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Fatal("consuming queue failed")
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("mailworker listening")

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			handle(ctx, logger, mg, d)
		}
	}
}

func handle(ctx context.Context, logger *logrus.Logger, mg *mailer.Mailgun, d amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.WithError(err).Warn("dropping malformed email job")
		_ = d.Nack(false, false)
		return
	}

	if err := mg.Send(ctx, job.To, job.Subject, job.Text, job.HTML); err != nil {
		logger.WithError(err).WithField("to", job.To).Warn("email delivery failed")
		// Requeue on the first failure only.
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}
