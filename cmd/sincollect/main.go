package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sincollect",
		Short: "Build a labeled Sinhala passage dataset from news sites and Wikipedia",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(scrapeCmd())
	root.AddCommand(buildCmd())
	root.AddCommand(splitCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(runCmd())

	return root
}

func scrapeCmd() *cobra.Command {
	var sites []string

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape sites and archive raw passages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(sites)
		},
	}

	cmd.Flags().StringSliceVar(&sites, "site", nil, "specific sites to scrape (e.g., hiru,adaderana,wiki)")
	return cmd
}

func buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Clean and normalize archived passages into the dataset file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild()
		},
	}
	return cmd
}

func splitCmd() *cobra.Command {
	var chunks bool

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split the dataset into train/dev/test files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(chunks)
		},
	}

	cmd.Flags().BoolVar(&chunks, "chunks", false, "also write fixed-size chunk files per split")
	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show archive counts per site and category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
	return cmd
}

func runCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scrape all sites and build the dataset in one pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAll(output)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "dataset output path (default: from config)")
	return cmd
}
