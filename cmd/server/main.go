// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/unclebandit/automailer-backend/internal/controller"
	"github.com/unclebandit/automailer-backend/internal/db"
	"github.com/unclebandit/automailer-backend/internal/handler"
	"github.com/unclebandit/automailer-backend/internal/queue"
	"github.com/unclebandit/automailer-backend/internal/repository"
	"github.com/unclebandit/automailer-backend/internal/service"
	"github.com/unclebandit/automailer-backend/internal/settings"
	"github.com/unclebandit/automailer-backend/internal/transport"
	"github.com/unclebandit/automailer-backend/internal/validate"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()

	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	runRepo := &repository.RunRepository{DB: db.DB}
	outcomeRepo := &repository.OutcomeRepository{DB: db.DB}

	// With AMQP_URL set, runs go to RabbitMQ and the worker binary picks
	// them up. Without it, the server executes runs in-process.
	var publisher queue.Publisher
	if url := os.Getenv("AMQP_URL"); url != "" {
		amqpQueue, err := queue.NewAMQPQueue(url)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer amqpQueue.Close()
		publisher = amqpQueue
	} else {
		q := queue.NewInMemoryQueue()
		executor := &service.RunExecutor{
			Campaigns: campaignRepo,
			Runs:      runRepo,
			Outcomes:  outcomeRepo,
			Settings:  settings.Source{Store: settings.NewStore()},
			Transport: transport.NewSMTPTransport(),
			Validator: validate.NewClient(os.Getenv("ABSTRACT_API_KEY")),
		}
		queue.StartRunSubscriber(q, executor)
		publisher = q
	}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		RunRepo:      runRepo,
		Queue:        publisher,
	}

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
	}

	runHandler := &handler.RunHandler{
		Runs:     runRepo,
		Outcomes: outcomeRepo,
	}

	r := chi.NewRouter()

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", campaignController.GetCampaignDetails)
	r.Post("/campaigns/{id}/preview", campaignController.PreviewCampaign)
	r.Post("/campaigns/{id}/runs", campaignController.StartRun)

	// Run routes
	r.Get("/runs/{id}", runHandler.GetRunHandler)
	r.Get("/runs/{id}/outcomes", runHandler.ListRunOutcomesHandler)

	log.Println("🚀 Server running on :8080")
	log.Fatal(http.ListenAndServe(":8080", r))
}
