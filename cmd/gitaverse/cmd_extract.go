package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadhuseva/gitaverse/internal/canon"
	"github.com/sadhuseva/gitaverse/internal/extract"
	"github.com/sadhuseva/gitaverse/internal/history"
)

var (
	extractIn     string
	extractSource string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Seed verse texts from a scripture HTML export",
	Long: `Parses an HTML export of one scripture (div.verse blocks with .ref
and .translation children) and loads the translations into the store. The
post command quotes these texts in its prompts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := canon.ParseSource(extractSource)
		if err != nil {
			return err
		}

		f, err := os.Open(extractIn)
		if err != nil {
			return err
		}
		defer f.Close()

		verses, skipped, err := extract.Verses(f)
		if err != nil {
			return err
		}
		if skipped > 0 {
			logger.Warn("skipped malformed verse blocks", zap.Int("count", skipped))
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := history.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		for _, v := range verses {
			if err := store.SeedVerseText(cmd.Context(), src, v.Ref.String(), v.Body); err != nil {
				return err
			}
		}

		fmt.Printf("Seeded %d %s verses from %s\n", len(verses), src, extractIn)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractIn, "in", "", "scripture HTML export to parse")
	extractCmd.Flags().StringVar(&extractSource, "source", "gita", "which scripture the export belongs to (gita|bhagavatam)")
	extractCmd.MarkFlagRequired("in")
}
