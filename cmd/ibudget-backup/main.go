// Command ibudget-backup exports or imports a full backup against the SQLite
// database directly, without a running server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"ibudget/internal/backup"
	"ibudget/internal/cli"
	applog "ibudget/internal/log"
)

func main() {
	var (
		dbPath     = flag.String("db", "./data/ibudget.db", "path to the SQLite database")
		exportPath = flag.String("export", "", "write a backup to this file ('-' for stdout)")
		importPath = flag.String("import", "", "restore a backup from this file")
	)
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(applog.ComponentBackup)

	if (*exportPath == "") == (*importPath == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -export or -import is required")
		flag.Usage()
		os.Exit(2)
	}

	st := cli.InitStore(logger, *dbPath)
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *exportPath != "" {
		runExport(ctx, logger, st, *exportPath)
		return
	}
	runImport(ctx, logger, st, *importPath)
}

func runExport(ctx context.Context, logger *applog.Logger, st backup.Store, path string) {
	snap, err := backup.Export(ctx, st)
	if err != nil {
		logger.Error("Export failed", "error", err)
		os.Exit(1)
	}

	out := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			logger.Error("Cannot create export file", "error", err, "path", path)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		logger.Error("Cannot write export", "error", err)
		os.Exit(1)
	}
}

func runImport(ctx context.Context, logger *applog.Logger, st backup.Store, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Cannot read backup file", "error", err, "path", path)
		os.Exit(1)
	}
	snap, err := backup.Import(ctx, st, data)
	if err != nil {
		logger.Error("Import failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Import complete",
		"transactions", len(snap.Transactions),
		"categories", len(snap.Categories),
		"subcategories", len(snap.Subcategories),
		"accounts", len(snap.Accounts),
		"budgets", len(snap.Budgets),
	)
}
