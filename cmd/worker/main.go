package main

import (
	"github.com/joho/godotenv"

	"github.com/certavo/certavo-backend/internal/config"
	"github.com/certavo/certavo-backend/internal/logger"
	"github.com/certavo/certavo-backend/internal/mailer"
	"github.com/certavo/certavo-backend/internal/queue"
	"github.com/certavo/certavo-backend/internal/service"
	"github.com/certavo/certavo-backend/internal/store"
)

// The worker consumes dispatch jobs from RabbitMQ and runs the email sends
// outside the API process. It needs the Postgres store, since an in-memory
// store would not be visible across processes.
func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("")
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.AppEnv)

	if cfg.StoreDriver != "postgres" {
		log.Fatal().Msg("worker requires STORE_DRIVER=postgres")
	}

	st, err := store.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to postgres")
	}
	if err := st.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("cannot ensure schema")
	}

	dispatcher := &service.Dispatcher{
		Store:   st,
		Sender:  mailer.NewSMTP(cfg),
		Subject: cfg.MailSubject,
		Delay:   cfg.DispatchDelay,
		Log:     log,
	}

	q, err := queue.NewAMQP(cfg.AMQPURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to rabbitmq")
	}
	defer q.Close()

	err = q.Subscribe(queue.TopicDispatch, func(job queue.DispatchJob) error {
		return dispatcher.Dispatch(job.CampaignID, job.FixedURL)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cannot subscribe to dispatch queue")
	}

	log.Info().Msg("worker running, waiting for dispatch jobs")
	select {}
}
