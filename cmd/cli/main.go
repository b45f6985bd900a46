package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akeren/betrayal-web/config"
	"github.com/akeren/betrayal-web/internal/log"
)

func main() {
	logger := log.NewLoggerFromEnv()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "export":
		written, err := runExport(ctx, logger, args[1:])
		if err != nil {
			logger.Error("Static export failed", "error", err.Error())
			os.Exit(1)
		}
		logger.Info("Static export completed", "files", written)

	case "generate-page", "genpage", "gen-page":
		if err := GeneratePage(ctx, "."); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: cli <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  export [-o dir]  Render the landing page and its stylesheet into a static bundle (default www/dist)")
	fmt.Println("  generate-page    Interactively scaffold a new page (controller and template)")
}
