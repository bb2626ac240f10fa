package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nazarov/footballmanager/config"
	"github.com/nazarov/footballmanager/pkg/mailer"
)

// Consumes the email queue and delivers welcome emails via Mailgun.
func main() {
	cfg := config.Load()
	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	log.Printf("email worker consuming queue %q", cfg.RabbitMQEmailQueue)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-quit:
			log.Println("email worker shutting down")
			return
		case d, ok := <-msgs:
			if !ok {
				log.Println("consume channel closed")
				return
			}
			if err := handle(mg, d.Body); err != nil {
				log.Printf("email send failed: %v", err)
				_ = d.Nack(false, false) // drop; welcome emails are not worth a retry loop
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handle(mg *mailer.Mailgun, body []byte) error {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("decode job: %w", err)
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template == mailer.TemplateWelcome {
		data := mailer.WelcomeData{
			AppName: str(job.Data["AppName"]),
			Name:    str(job.Data["Name"]),
			Email:   str(job.Data["Email"]),
		}
		var err error
		if subject, text, html, err = mailer.RenderWelcome(data); err != nil {
			return fmt.Errorf("render welcome: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return mg.Send(ctx, job.To, subject, text, html)
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
