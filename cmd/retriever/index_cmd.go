package main

import (
	"fmt"
	"os"

	"github.com/billstark/retriever/internal/config"
	"github.com/billstark/retriever/internal/corpus"
	"github.com/billstark/retriever/internal/index"
	"github.com/billstark/retriever/internal/logging"
	"github.com/spf13/cobra"
)

func newIndexCmd() *cobra.Command {
	var (
		corpusDir   string
		dictOut     string
		postingsOut string
		modeFlag    string
		workers     int
		configPath  string
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build a dictionary/postings index from a corpus directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if corpusDir == "" || dictOut == "" || postingsOut == "" {
				return &usageError{fmt.Errorf("index requires -i, -d, and -p")}
			}
			mode, err := index.ParseMode(modeFlag)
			if err != nil {
				return &usageError{err}
			}

			defaults, err := config.Load(configPath)
			if err != nil {
				return &usageError{err}
			}
			if !cmd.Flags().Changed("workers") && defaults.Workers > 0 {
				workers = defaults.Workers
			}
			if !cmd.Flags().Changed("log-level") && defaults.LogLevel != "" {
				logLevel = defaults.LogLevel
			}
			if _, err := logging.ParseLevelOrDefault(logLevel); err != nil {
				return &usageError{err}
			}

			log := logging.New(os.Stderr, logLevel)

			builder := index.NewBuilder(mode)
			if err := corpus.Build(corpusDir, builder, workers, log); err != nil {
				return err
			}
			if err := builder.Write(dictOut, postingsOut); err != nil {
				return err
			}

			log.Info().Str("dictionary", dictOut).Str("postings", postingsOut).Str("mode", mode.String()).Msg("index built")
			return nil
		},
	}

	cmd.Flags().StringVarP(&corpusDir, "input", "i", "", "corpus directory (files named by DocId)")
	cmd.Flags().StringVarP(&dictOut, "dictionary", "d", "", "dictionary output file")
	cmd.Flags().StringVarP(&postingsOut, "postings", "p", "", "postings output file")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "ranked", "index format: ranked or bool")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (0 = automatic)")
	cmd.Flags().StringVar(&configPath, "config", "", "optional TOML defaults file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}
