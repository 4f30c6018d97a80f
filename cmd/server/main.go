package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/certavo/certavo-backend/internal/config"
	"github.com/certavo/certavo-backend/internal/controller"
	"github.com/certavo/certavo-backend/internal/fonts"
	"github.com/certavo/certavo-backend/internal/logger"
	"github.com/certavo/certavo-backend/internal/mailer"
	"github.com/certavo/certavo-backend/internal/queue"
	"github.com/certavo/certavo-backend/internal/roster"
	"github.com/certavo/certavo-backend/internal/service"
	"github.com/certavo/certavo-backend/internal/store"
)

func main() {
	// Load .env; deployments may configure through the environment instead.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("")
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.AppEnv)

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadsDir).Msg("cannot create uploads directory")
	}

	var st store.Store
	switch cfg.StoreDriver {
	case "postgres":
		pg, err := store.NewPostgres(cfg.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to postgres")
		}
		if err := pg.EnsureSchema(); err != nil {
			log.Fatal().Err(err).Msg("cannot ensure schema")
		}
		st = pg
	default:
		st = store.NewMemory()
	}

	dispatcher := &service.Dispatcher{
		Store:   st,
		Sender:  mailer.NewSMTP(cfg),
		Subject: cfg.MailSubject,
		Delay:   cfg.DispatchDelay,
		Log:     log,
	}

	var q queue.Queue
	switch cfg.QueueDriver {
	case "amqp":
		// Jobs are consumed by cmd/worker; the server only publishes.
		aq, err := queue.NewAMQP(cfg.AMQPURL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to rabbitmq")
		}
		defer aq.Close()
		q = aq
	default:
		mq := queue.NewInMemoryQueue(log)
		mq.Subscribe(queue.TopicDispatch, func(job queue.DispatchJob) error {
			return dispatcher.Dispatch(job.CampaignID, job.FixedURL)
		})
		q = mq
	}

	campaignService := &service.CampaignService{
		Store:      st,
		Fonts:      fonts.Resolver{Dir: cfg.FontsDir},
		Queue:      q,
		UploadsDir: cfg.UploadsDir,
		Log:        log,
	}

	campaignController := &controller.CampaignController{
		Service: campaignService,
		Roster:  roster.Ingestor{Store: st},
		Log:     log,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Hello":"World"}`))
	})

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns/{id}", campaignController.GetCampaign)
	r.Put("/campaigns/{id}/template", campaignController.UpdateTemplate)
	r.Put("/campaigns/{id}/students", campaignController.UpdateStudents)
	r.Put("/campaigns/{id}/message", campaignController.UpdateMessage)
	r.Post("/campaigns/{id}/activate", campaignController.Activate)

	// Certificate retrieval by redemption code
	r.Get("/certificates/{code}", campaignController.CertificateByCode)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("server running")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
