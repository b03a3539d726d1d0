// Command sync-runner runs the Power BI pull once and exits, for cron-driven
// refreshes outside the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/airfinance/finbi_backend/config"
	"github.com/airfinance/finbi_backend/models"
	"github.com/airfinance/finbi_backend/pbisync"
)

func main() {
	target := flag.String("target", "all", "Sync target: payables, receivables or all")
	flag.Parse()

	var targets []string
	switch strings.ToLower(strings.TrimSpace(*target)) {
	case models.SyncTargetPayables:
		targets = []string{models.SyncTargetPayables}
	case models.SyncTargetReceivables:
		targets = []string{models.SyncTargetReceivables}
	case "all":
		targets = []string{models.SyncTargetPayables, models.SyncTargetReceivables}
	default:
		fmt.Fprintf(os.Stderr, "unknown target %q\n", *target)
		os.Exit(2)
	}

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	models.MigrateTable()

	syncer := pbisync.NewSyncer(pbisync.NewGormStore())

	failed := false
	for _, t := range targets {
		outcome := syncer.Sync(ctx, t)
		fmt.Printf("%s: success=%v count=%d message=%q\n", t, outcome.Success, outcome.Count, outcome.Message)
		if !outcome.Success {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
