package main

import (
	"fmt"
	"os"

	"entregas/internal/cli"
	"entregas/internal/config"
	"entregas/internal/logger"
	"entregas/internal/repository/postgres"
	"entregas/internal/service"
)

func main() {
	app := cli.NewApp(openReportService, os.Stdout)
	if err := app.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openReportService() (service.ReportService, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	// Logs go to stderr so stdout stays parseable.
	log := logger.Setup(cfg.Log)
	log.SetOutput(os.Stderr)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return service.NewReportService(postgres.NewDeliveryRepo(db), cfg.Report), db.Close, nil
}
