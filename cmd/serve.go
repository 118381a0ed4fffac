package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ragserver/internal/config"
	"github.com/ziadkadry99/ragserver/internal/embeddings"
	"github.com/ziadkadry99/ragserver/internal/llm"
	"github.com/ziadkadry99/ragserver/internal/rag"
	"github.com/ziadkadry99/ragserver/internal/server"
	"github.com/ziadkadry99/ragserver/internal/vectordb"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the RAG orchestration HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Optional .env for provider credentials referenced by env name.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("serve: skipping .env: %v", err)
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		httpClient := &http.Client{Timeout: cfg.ProviderTimeout}

		llms := llm.NewFactory(nil, httpClient)
		ems := embeddings.NewFactory(nil, httpClient)
		stores := vectordb.NewFactory(nil)

		chain := rag.NewChain(llms, ems, stores,
			rag.WithProviderTimeout(cfg.ProviderTimeout),
			rag.WithCondenseQuestion(cfg.CondenseQuestion),
		)

		srv := server.New(cfg, chain, llms, ems, stores)

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() { done <- srv.Start() }()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-done:
			return err
		case s := <-sig:
			log.Printf("serve: received %s, shutting down", s)
			return srv.Shutdown(context.Background())
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
