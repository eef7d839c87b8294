// Command migrate applies or inspects the embedded schema migrations.
//
//	migrate up | down | status | version | redo | reset
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/EgehanKilicarslan/bookstore/internal/config"
	"github.com/EgehanKilicarslan/bookstore/internal/database"
	"github.com/EgehanKilicarslan/bookstore/internal/logger"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s <up|down|status|version|redo|reset> [args]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.LoadConfig()
	appLogger := logger.New(cfg)

	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		appLogger.Error("❌ Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	command := flag.Arg(0)
	appLogger.Info("🗄️ [Migrate] Running migrations", "command", command)
	if err := database.Migrate(context.Background(), db, command, flag.Args()[1:]...); err != nil {
		appLogger.Error("❌ Migration failed", "command", command, "error", err)
		os.Exit(1)
	}
	appLogger.Info("✅ [Migrate] Done", "command", command)
}
