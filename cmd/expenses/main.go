package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin"

	"expenses/internal/backend"
	"expenses/internal/cli"
	"expenses/internal/config"
	"expenses/internal/export"
	applog "expenses/internal/log"
	"expenses/internal/services"
)

func main() {
	dataDir := kingpin.Flag("data-dir", "Directory holding the expense files").String()
	backendType := kingpin.Flag("backend", "Authoritative store").Enum(backend.GetBackendTypeStrings()...)
	mirror := kingpin.Flag("mirror", "Also rewrite the CSV file and insert into SQLite on every record").Bool()

	cmdMenu := kingpin.Command("menu", "Interactive menu").Default()

	cmdAdd := kingpin.Command("add", "Record an expense")
	addCategory := cmdAdd.Arg("category", "Expense category").Required().String()
	addAmount := cmdAdd.Arg("amount", "Amount, e.g. 12.50").Required().String()
	addDate := cmdAdd.Flag("date", "Date as YYYY-MM-DD (default today)").String()
	addNotes := cmdAdd.Flag("notes", "Free-text notes").String()

	cmdList := kingpin.Command("list", "List recorded expenses")
	cmdReport := kingpin.Command("report", "Show totals, average and per-category breakdown")
	cmdChart := kingpin.Command("chart", "Draw spending per category")

	cmdExport := kingpin.Command("export", "Write the collection to another format")
	exportFormat := cmdExport.Arg("format", "csv, sqlite or xlsx").Required().Enum(formatNames()...)
	exportOut := cmdExport.Flag("out", "Destination path (default from configuration)").String()

	cmd := kingpin.Parse()

	cli.LoadEnvFile()
	cfg, err := cli.LoadConfig(config.Config{
		DataDir:       *dataDir,
		Backend:       *backendType,
		MirrorOnWrite: *mirror,
	})
	if err != nil {
		kingpin.Fatalf("%v", err)
	}

	logger := cli.SetupLogger(cfg)
	ctx := context.Background()

	svc, err := cli.NewService(ctx, cfg, logger)
	if err != nil {
		kingpin.Fatalf("%v", err)
	}
	stop := cli.HandleInterrupt(logger, svc.Close)

	out := cli.NewRenderer(os.Stdout, cfg.Currency)
	switch cmd {
	case cmdMenu.FullCommand():
		err = cli.NewMenu(svc, os.Stdin, os.Stdout, cfg.Currency, logger).Run(ctx)
	case cmdAdd.FullCommand():
		err = add(ctx, svc, out, services.RecordInput{
			Category: *addCategory,
			Amount:   *addAmount,
			Date:     *addDate,
			Notes:    *addNotes,
		})
	case cmdList.FullCommand():
		expenses, lerr := svc.List(ctx)
		if err = lerr; err == nil {
			out.List(expenses)
		}
	case cmdReport.FullCommand():
		s, rerr := svc.Summary(ctx)
		if err = rerr; err == nil {
			out.Report(s)
		}
	case cmdChart.FullCommand():
		totals, terr := svc.CategoryTotals(ctx)
		if err = terr; err == nil {
			out.Chart(totals)
		}
	case cmdExport.FullCommand():
		var path string
		path, err = svc.Export(ctx, export.Format(*exportFormat), *exportOut)
		if err == nil {
			fmt.Printf("Exported to %s\n", path)
		}
	}

	stop()
	logger.Debug("Shutting down", applog.FieldOperation, applog.OpShutdown)
	if cerr := svc.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		kingpin.Fatalf("%v", err)
	}
}

func add(ctx context.Context, svc *services.ExpenseService, out *cli.Renderer, in services.RecordInput) error {
	e, err := svc.Record(ctx, in)
	if err != nil {
		return err
	}
	out.Recorded(e)
	return nil
}

func formatNames() []string {
	var names []string
	for _, f := range export.Formats() {
		names = append(names, f.String())
	}
	return names
}
