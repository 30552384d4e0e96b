package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Slavigrad/cv-export/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and clear the shared cache backends",
	Long:  "Operates directly on the Redis and PostgreSQL cache tiers configured through REDIS_ADDR and DATABASE_URL. The in-process memory tier belongs to a running server and is managed through its /cache endpoints.",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached entries from the shared tiers",
	RunE:  runCacheClear,
}

var cacheSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove only expired entries from the shared tiers",
	RunE:  runCacheSweep,
}

var (
	cacheTags      []string
	cacheOlderThan time.Duration
)

func init() {
	cacheClearCmd.Flags().StringSliceVar(&cacheTags, "tag", nil, "Only clear entries carrying one of these tags")
	cacheClearCmd.Flags().DurationVar(&cacheOlderThan, "older-than", 0, "Only clear entries created longer ago than this (e.g. 24h)")

	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheSweepCmd)
	rootCmd.AddCommand(cacheCmd)
}

// sharedTiers connects the cache tiers that live outside the server process.
func sharedTiers(ctx context.Context) ([]cache.Tier, func(), error) {
	var tiers []cache.Tier
	var closers []func()

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		tiers = append(tiers, cache.NewSessionTier(client, "cvexport:cache:", cache.DefaultConfig(cache.TierSession), nil))
		closers = append(closers, func() { _ = client.Close() })
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		durable, err := cache.ConnectDurableTier(ctx, url, cache.DefaultConfig(cache.TierDurable))
		if err != nil {
			return nil, nil, err
		}
		tiers = append(tiers, durable)
		closers = append(closers, durable.Close)
	}

	if len(tiers) == 0 {
		return nil, nil, fmt.Errorf("no shared cache tiers configured, set REDIS_ADDR and/or DATABASE_URL")
	}

	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}
	return tiers, cleanup, nil
}

func runCacheClear(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tiers, cleanup, err := sharedTiers(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	filter := cache.Filter{Tags: cacheTags, OlderThan: cacheOlderThan}
	removed := make(map[string]int, len(tiers))
	for _, tier := range tiers {
		n, err := tier.Clear(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to clear %s tier: %w", tier.Name(), err)
		}
		removed[string(tier.Name())] = n
	}

	out, _ := json.Marshal(removed)
	fmt.Printf("Cleared: %s\n", out)
	return nil
}

func runCacheSweep(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tiers, cleanup, err := sharedTiers(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, tier := range tiers {
		n, err := tier.Sweep(ctx)
		if err != nil {
			return fmt.Errorf("failed to sweep %s tier: %w", tier.Name(), err)
		}
		fmt.Printf("Swept %d expired entries from the %s tier\n", n, tier.Name())
	}
	return nil
}
