package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"memchat/internal/app"
	"memchat/internal/config"
	"memchat/internal/provider"
	"memchat/internal/ui"
)

var version = "0.1.0"

var (
	flagPrompt     string
	flagModel      string
	flagMemory     string
	flagJSON       bool
	flagDiff       bool
	flagListModels bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "memchat",
		Short: "Transparent memory-aware chat sandbox",
		Long: `MemChat compares a model's unaided answer against its answer when it
can list and read local memory files, and shows every tool call the
model made along the way. Without --prompt it starts the interactive
terminal UI.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&flagPrompt, "prompt", "p", "", "chat prompt to process (omit to launch the TUI)")
	rootCmd.Flags().StringVarP(&flagModel, "model", "m", "", "model to use (default from config)")
	rootCmd.Flags().StringVar(&flagMemory, "memory", "", "path to memory directory (default: ./memory)")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "output results as JSON")
	rootCmd.Flags().BoolVar(&flagDiff, "diff", false, "show diff between baseline and augmented responses")
	rootCmd.Flags().BoolVar(&flagListModels, "list-models", false, "list supported models")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("memchat version %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flagListModels {
		printModels()
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if flagMemory != "" {
		cfg.MemoryDir = flagMemory
	}

	if flagPrompt == "" {
		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		return ui.Run(a)
	}

	return runHeadless(cmd.Context(), cfg)
}

func runHeadless(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(cfg)
	if err != nil {
		if flagJSON {
			printJSONError(err, flagPrompt, cfg.Model)
		}
		return err
	}

	if !flagJSON {
		printRunHeader(cfg)
	}

	res := a.Orchestrator.Run(ctx, flagPrompt)

	if flagJSON {
		raw, err := res.ExportJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	}

	printFormatted(res, flagDiff)
	return nil
}

func printModels() {
	fmt.Println("Supported models:")
	for _, kind := range []provider.Kind{provider.KindOpenAI, provider.KindAnthropic, provider.KindOllama} {
		fmt.Printf("  %s:\n", kind)
		for _, m := range provider.ModelsFor(kind) {
			fmt.Printf("    - %s\n", m)
		}
	}
}
