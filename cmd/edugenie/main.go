// EduGenie
//
// An AI academic assistant: a web chat that forwards conversations to an
// OpenRouter (OpenAI-compatible) completion endpoint.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/edugenie/edugenie/internal/config"
	"github.com/edugenie/edugenie/internal/llm/openrouter"
	"github.com/edugenie/edugenie/internal/server"
	"github.com/edugenie/edugenie/internal/session"
)

var (
	version = "dev"
	addr    string
)

var rootCmd = &cobra.Command{
	Use:   "edugenie",
	Short: "EduGenie - AI Academic Assistant",
	Long: `EduGenie is a web chat assistant for studying: ask questions in the
browser and get answers from an OpenRouter-hosted model.

  edugenie serve    Start the chat server (default port 8501)`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the EduGenie chat server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides EDUGENIE_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		// Configuration problems are fatal and operator-facing; the error
		// names the variable, never the value.
		return err
	}
	if addr != "" {
		cfg.ServerAddr = addr
	}

	store, err := session.NewStore()
	if err != nil {
		return fmt.Errorf("initializing session store: %w", err)
	}
	defer store.Close()

	client := openrouter.New(cfg.APIKey, cfg.Model, cfg.BaseURL)
	srv := server.New(cfg, store, client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Println("EduGenie stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
