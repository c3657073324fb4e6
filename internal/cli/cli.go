// Package cli implements the relatorio command, which prints the same ledger
// and dashboard views the HTTP API serves.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"entregas/internal/domain"
	"entregas/internal/export"
	"entregas/internal/service"
)

// Opener returns the report service and a function releasing its resources.
// It is called only when a command actually runs, so --help never touches
// the database.
type Opener func() (service.ReportService, func() error, error)

// App is the relatorio command-line application.
type App struct {
	rootCmd *cobra.Command
	open    Opener
}

// NewApp builds the command tree writing results to out.
func NewApp(open Opener, out io.Writer) *App {
	app := &App{open: open}

	rootCmd := &cobra.Command{
		Use:           "relatorio",
		Short:         "Delivery reports: dashboard and ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringP("empresa", "e", "", "Tenant (empresa)")
	rootCmd.PersistentFlags().StringP("data", "d", "", "Date (YYYY-MM-DD)")

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard summary as JSON",
		RunE:  app.runDashboard,
	}

	cadernoCmd := &cobra.Command{
		Use:   "caderno",
		Short: "Print or save the delivery ledger",
		RunE:  app.runLedger,
	}
	cadernoCmd.Flags().Bool("fiado", false, "Only deliveries on credit; ignores --data")
	cadernoCmd.Flags().StringP("format", "f", "json", "Output format: json, csv or xlsx")
	cadernoCmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout")

	rootCmd.AddCommand(dashboardCmd, cadernoCmd)
	app.rootCmd = rootCmd
	return app
}

// Execute runs the application with args.
func (app *App) Execute(args []string) error {
	app.rootCmd.SetArgs(args)
	return app.rootCmd.Execute()
}

func parseDateFlag(cmd *cobra.Command) (*time.Time, error) {
	raw, _ := cmd.Flags().GetString("data")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --data %q: must be YYYY-MM-DD", raw)
	}
	return &t, nil
}

func (app *App) runDashboard(cmd *cobra.Command, _ []string) error {
	tenant, _ := cmd.Flags().GetString("empresa")
	ref, err := parseDateFlag(cmd)
	if err != nil {
		return err
	}

	svc, closeFn, err := app.open()
	if err != nil {
		return err
	}
	defer closeFn()

	summary, err := svc.Dashboard(cmd.Context(), tenant, ref)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func (app *App) runLedger(cmd *cobra.Command, _ []string) error {
	tenant, _ := cmd.Flags().GetString("empresa")
	onCredit, _ := cmd.Flags().GetBool("fiado")
	formatName, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	filter := domain.ReportFilter{Tenant: strings.TrimSpace(tenant), OnCreditOnly: onCredit}
	if !onCredit {
		date, err := parseDateFlag(cmd)
		if err != nil {
			return err
		}
		filter.Date = date
	}

	var format export.Format
	if !strings.EqualFold(formatName, "json") {
		f, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		format = f
	}

	svc, closeFn, err := app.open()
	if err != nil {
		return err
	}
	defer closeFn()

	deliveries, err := svc.Ledger(cmd.Context(), filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer file.Close()
		out = file
	}

	if format == "" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(deliveries)
	}
	return export.Write(out, format, deliveries)
}
