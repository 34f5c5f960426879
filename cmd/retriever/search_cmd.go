package main

import (
	"fmt"
	"os"

	"github.com/billstark/retriever/internal/config"
	"github.com/billstark/retriever/internal/driver"
	"github.com/billstark/retriever/internal/index"
	"github.com/billstark/retriever/internal/logging"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		dictIn     string
		postingsIn string
		queriesIn  string
		resultsOut string
		modeFlag   string
		k          int
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Answer a batch of boolean or ranked queries against an index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dictIn == "" || postingsIn == "" || queriesIn == "" || resultsOut == "" {
				return &usageError{fmt.Errorf("search requires -d, -p, -q, and -o")}
			}
			mode, err := index.ParseMode(modeFlag)
			if err != nil {
				return &usageError{err}
			}

			defaults, err := config.Load(configPath)
			if err != nil {
				return &usageError{err}
			}
			if !cmd.Flags().Changed("k") && defaults.K > 0 {
				k = defaults.K
			}
			if !cmd.Flags().Changed("log-level") && defaults.LogLevel != "" {
				logLevel = defaults.LogLevel
			}
			if _, err := logging.ParseLevelOrDefault(logLevel); err != nil {
				return &usageError{err}
			}

			log := logging.New(os.Stderr, logLevel)

			reader, err := index.Open(dictIn, postingsIn, mode)
			if err != nil {
				return err
			}
			defer reader.Close()

			in, err := os.Open(queriesIn)
			if err != nil {
				return fmt.Errorf("opening queries file: %w", err)
			}
			defer in.Close()

			out, err := os.Create(resultsOut)
			if err != nil {
				return fmt.Errorf("creating results file: %w", err)
			}
			defer out.Close()

			driverMode := driver.ModeBoolean
			if mode == index.Ranked {
				driverMode = driver.ModeRanked
			}

			return driver.Run(in, out, reader, driverMode, k, log)
		},
	}

	cmd.Flags().StringVarP(&dictIn, "dictionary", "d", "", "dictionary input file")
	cmd.Flags().StringVarP(&postingsIn, "postings", "p", "", "postings input file")
	cmd.Flags().StringVarP(&queriesIn, "queries", "q", "", "file of queries, one per line")
	cmd.Flags().StringVarP(&resultsOut, "output", "o", "", "results output file")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "ranked", "query mode: ranked or bool")
	cmd.Flags().IntVarP(&k, "k", "k", 10, "number of ranked results per query")
	cmd.Flags().StringVar(&configPath, "config", "", "optional TOML defaults file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}
