package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ragserver/internal/config"
	"github.com/ziadkadry99/ragserver/internal/embeddings"
	"github.com/ziadkadry99/ragserver/internal/llm"
	"github.com/ziadkadry99/ragserver/internal/provider"
	"github.com/ziadkadry99/ragserver/internal/vectordb"
)

var (
	checkKind  string
	checkIndex string
	checkEM    string
)

var checkCmd = &cobra.Command{
	Use:   "check <setting.json>",
	Short: "Validate a provider setting file against the live backend",
	Long: `Reads a provider setting from a JSON file, validates its shape and runs
the same live probe as the setting status endpoints. For vector store
settings, --index and --em-setting select the index and the embedder
used for the probe query.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading setting file: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ProviderTimeout)
		defer cancel()

		httpClient := &http.Client{Timeout: cfg.ProviderTimeout}

		switch checkKind {
		case "llm":
			var setting provider.LLMSetting
			if err := json.Unmarshal(data, &setting); err != nil {
				return fmt.Errorf("parsing LLM setting: %w", err)
			}
			handle, err := llm.NewFactory(nil, httpClient).Resolve(setting)
			if err != nil {
				return err
			}
			if err := handle.CheckSetting(ctx); err != nil {
				return err
			}
			fmt.Printf("LLM setting for %s is valid\n", setting.Provider)

		case "em":
			var setting provider.EMSetting
			if err := json.Unmarshal(data, &setting); err != nil {
				return fmt.Errorf("parsing EM setting: %w", err)
			}
			handle, err := embeddings.NewFactory(nil, httpClient).Resolve(setting)
			if err != nil {
				return err
			}
			if err := handle.CheckSetting(ctx); err != nil {
				return err
			}
			fmt.Printf("EM setting for %s is valid\n", setting.Provider)

		case "vector-store":
			if checkIndex == "" {
				return fmt.Errorf("--index is required for vector store checks")
			}
			if checkEM == "" {
				return fmt.Errorf("--em-setting is required for vector store checks")
			}

			var setting provider.VectorStoreSetting
			if err := json.Unmarshal(data, &setting); err != nil {
				return fmt.Errorf("parsing vector store setting: %w", err)
			}

			emData, err := os.ReadFile(checkEM)
			if err != nil {
				return fmt.Errorf("reading EM setting file: %w", err)
			}
			var emSetting provider.EMSetting
			if err := json.Unmarshal(emData, &emSetting); err != nil {
				return fmt.Errorf("parsing EM setting: %w", err)
			}

			embedder, err := embeddings.NewFactory(nil, httpClient).Resolve(emSetting)
			if err != nil {
				return err
			}
			store, err := vectordb.NewFactory(nil).Resolve(setting, checkIndex, embedder)
			if err != nil {
				return err
			}

			status, err := store.CheckSetting(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("vector store setting for %s is valid\n", setting.Provider)
			for _, md := range status.Metadata {
				fmt.Printf("  %s: %v\n", md.Code, md.Value)
			}

		default:
			return fmt.Errorf("unknown kind %q: must be llm, em or vector-store", checkKind)
		}

		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkKind, "kind", "llm", "setting kind: llm, em or vector-store")
	checkCmd.Flags().StringVar(&checkIndex, "index", "", "document index name (vector store checks)")
	checkCmd.Flags().StringVar(&checkEM, "em-setting", "", "EM setting JSON file (vector store checks)")
	rootCmd.AddCommand(checkCmd)
}
