package main

import (
	"log"

	"github.com/askfield/user_service/config"
	"github.com/askfield/user_service/infra/queue"
	"github.com/askfield/user_service/internal/mail"
)

func main() {
	cfg := config.LoadConfig()

	log.Println("Mail Service starting...")
	log.Printf("KafkaBroker=%s Topic=%s GroupID=%s\n",
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
	)

	mailService, err := mail.NewMailService(
		cfg.GmailUser,
		cfg.GmailAppPassword,
		cfg.MailFrom,
		cfg.MailFromName,
		cfg.VerifyBaseURL,
		cfg.DashboardBaseURL,
	)
	if err != nil {
		log.Fatalf("mail service init error: %v", err)
	}

	handler := mail.NewMailHandler(mailService)

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
	)

	log.Println("Mail Service listening for events...")
	consumer.Listen()
}
