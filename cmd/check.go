package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"NoLabelPanel/cache"
	"NoLabelPanel/config"
	"NoLabelPanel/repository"
	"NoLabelPanel/supabase"
)

// checkCmd probes the panel's collaborators: Redis and the hosted store.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check connectivity to Redis and the hosted store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := cache.ConnectRedis(cfg); err != nil {
			return fmt.Errorf("redis check failed: %w", err)
		}
		defer cache.CloseRedis()
		fmt.Println("Redis: ok")

		if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
			return fmt.Errorf("store check failed: SUPABASE_URL and SUPABASE_ANON_KEY must be set")
		}

		client := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		catalog := repository.NewSupabaseCatalogRepository(client)

		pending, err := catalog.CountPending(ctx)
		if err != nil {
			return fmt.Errorf("store check failed: %w", err)
		}
		published, err := catalog.CountPublishedAll(ctx)
		if err != nil {
			return fmt.Errorf("store check failed: %w", err)
		}
		fmt.Printf("Store: ok (%d pending, %d published)\n", pending, published)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
