// claimctl is the interactive manager console. It opens the claim store
// directly and serves the review menu without going through the HTTP API.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pavemint/claimdesk/internal/claims/app"
	"github.com/pavemint/claimdesk/internal/claims/cli"
	"github.com/pavemint/claimdesk/internal/claims/service"
	"github.com/pavemint/claimdesk/internal/claims/store/drivers/sqlite"
	"github.com/pavemint/claimdesk/pkg/cryptox"
	"github.com/pavemint/claimdesk/pkg/slogx"
)

func main() {
	_ = godotenv.Load()

	cfg := app.LoadConfig()

	// Logs go to stderr so they never interleave with the menu.
	slogx.New(slogx.Config{
		Service: "claimctl",
		Version: app.BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  os.Stderr,
	})

	cryptox.SetPepperPath(cfg.PepperFile)

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.DatabaseFile)
	st, err := sqlite.NewStore(dsn)
	if err != nil {
		log.Fatalf("failed to open claim store: %v", err)
	}
	defer st.Close()

	if err := st.ApplyMigrations(); err != nil {
		log.Fatalf("failed to apply database migrations: %v", err)
	}

	ctx := context.Background()

	if cfg.BootstrapUsername != "" && cfg.BootstrapPassword != "" {
		bootstrap := &service.BootstrapService{Store: st}
		if _, err := bootstrap.EnsureManager(ctx, cfg.BootstrapUsername, cfg.BootstrapPassword); err != nil {
			log.Fatalf("failed to bootstrap manager account: %v", err)
		}
	}

	console := &cli.Console{
		Auth:     &service.AuthService{Store: st},
		Workflow: &service.WorkflowService{Store: st},
		Reports:  &service.ReportService{Store: st},
	}

	if err := console.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "claimctl: %v\n", err)
		os.Exit(1)
	}
}
