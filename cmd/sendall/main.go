// cmd/sendall/main.go
//
// One-shot batch send: load a CSV, render the templates per row and
// deliver over SMTP, printing one progress line per row. No server or
// queue involved.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/unclebandit/automailer-backend/internal/dataset"
	"github.com/unclebandit/automailer-backend/internal/model"
	"github.com/unclebandit/automailer-backend/internal/render"
	"github.com/unclebandit/automailer-backend/internal/service"
	"github.com/unclebandit/automailer-backend/internal/settings"
	"github.com/unclebandit/automailer-backend/internal/sink"
	"github.com/unclebandit/automailer-backend/internal/transport"
	"github.com/unclebandit/automailer-backend/internal/validate"
)

func main() {
	var (
		file        = flag.String("file", "", "path to the recipients CSV")
		subject     = flag.String("subject", "", "subject template")
		body        = flag.String("body", "", "HTML body template")
		emailCol    = flag.String("email-col", "email", "email column name")
		idCol       = flag.String("id-col", "", "ID column name for enrichment")
		apiURL      = flag.String("api-url", "", "enrichment API URL template")
		simulate    = flag.Bool("simulate", false, "simulate the enrichment API (no network)")
		verify      = flag.Bool("verify", false, "verify addresses before sending")
		failClosed  = flag.Bool("fail-closed", false, "skip rows the validator cannot judge")
		previewOnly = flag.Int("preview", 0, "render the first N rows and exit without sending")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	if *file == "" || *body == "" {
		fmt.Fprintln(os.Stderr, "usage: sendall -file recipients.csv -subject 'Hi {name}' -body '<p>...</p>' [flags]")
		os.Exit(2)
	}

	ds, err := dataset.Load(*file)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Rows loaded: %d, Columns: %v\n", len(ds.Rows), ds.Columns)

	campaign := &model.Campaign{
		Name:            "sendall",
		SubjectTemplate: *subject,
		BodyTemplate:    *body,
		EmailColumn:     *emailCol,
		IDColumn:        *idCol,
		EnrichmentURL:   *apiURL,
		SimulateAPI:     *simulate,
	}

	if *previewOnly > 0 {
		preview(campaign, ds, *previewOnly)
		return
	}

	smtpSettings, err := (settings.Source{Store: settings.NewStore()}).Load()
	if err != nil {
		log.Fatal(err)
	}

	orch := &service.Orchestrator{
		Transport: transport.NewSMTPTransport(),
		Validator: validate.NewClient(os.Getenv("ABSTRACT_API_KEY")),
		Sink:      sink.NewWriterSink(os.Stdout),
	}

	done, err := orch.Start(context.Background(), service.RunConfig{
		Campaign:        campaign,
		Dataset:         ds,
		Settings:        smtpSettings,
		VerifyAddresses: *verify,
		FailClosed:      *failClosed,
	})
	if err != nil {
		log.Fatal(err)
	}

	summary := <-done
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func preview(c *model.Campaign, ds *model.Dataset, n int) {
	if n > len(ds.Rows) {
		n = len(ds.Rows)
	}
	for _, row := range ds.Rows[:n] {
		to := render.Stringify(row[c.EmailColumn])
		fmt.Printf("To: %s\nSubject: %s\nBody:\n%s\n%s\n",
			to,
			render.Render(c.SubjectTemplate, row),
			render.Render(c.BodyTemplate, row),
			"------------------------------------------------")
	}
}
