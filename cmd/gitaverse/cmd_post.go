package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadhuseva/gitaverse/internal/announce"
	"github.com/sadhuseva/gitaverse/internal/devotional"
	"github.com/sadhuseva/gitaverse/internal/history"
	"github.com/sadhuseva/gitaverse/internal/pipeline"
	"github.com/sadhuseva/gitaverse/internal/selector"
)

var (
	dryRun       bool
	withAnnounce bool
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Publish today's devotional",
	Long: `Selects the next scripture reference, generates a devotional post
about it, and appends it to the store. With --announce the published post is
also linked on X. Requires GEMINI_API_KEY (or api_key in the config file).`,
	RunE: runPost,
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the next reference without publishing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := history.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		ref, err := selector.New(store, logger).Select(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(ref)
		return nil
	},
}

func runPost(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sel := selector.New(store, logger)

	if dryRun {
		ref, err := sel.Select(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println("DRY RUN (nothing generated, nothing stored)")
		fmt.Printf("Would publish: %s\n", ref)
		return nil
	}

	apiKey := cfg.GeminiKey()
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required (or api_key in the config file)")
	}
	llm, err := devotional.NewGeminiLLM(cmd.Context(), apiKey, cfg.Model)
	if err != nil {
		return err
	}

	var announcer pipeline.Announcer
	if withAnnounce {
		a, err := announce.New(cfg.XCredentials(), cfg.SiteURL)
		if err != nil {
			return err
		}
		announcer = a
	}

	p := pipeline.New(sel, store, devotional.NewGenerator(llm, logger), announcer, logger)
	post, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Published %s %s as /devotional/%s\n", post.Source, post.RefText, post.Slug)
	return nil
}

func init() {
	postCmd.Flags().BoolVar(&dryRun, "dry-run", false, "select only; generate and store nothing")
	postCmd.Flags().BoolVar(&withAnnounce, "announce", false, "announce the published post on X")
}
