package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ragserver",
	Short: "RAG orchestration server over pluggable AI providers",
	Long: `ragserver normalizes access to LLM providers, embedding-model providers
and vector store backends behind a single API, and wires them into a
conversational question-answering pipeline with source citations and
guard-rail checks.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".ragserver.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
