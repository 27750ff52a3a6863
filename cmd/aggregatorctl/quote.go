package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fd1az/remit-aggregator/business/remit"
	remitDI "github.com/fd1az/remit-aggregator/business/remit/di"
	"github.com/fd1az/remit-aggregator/business/remit/domain"
	"github.com/fd1az/remit-aggregator/business/remit/infra/catalogdata"
	"github.com/fd1az/remit-aggregator/internal/config"
	"github.com/fd1az/remit-aggregator/internal/logger"
	"github.com/fd1az/remit-aggregator/internal/monolith"
)

// Exit codes, per the external command-line contract.
const (
	exitSuccess           = 0
	exitInvalidParameter  = 2
	exitNoProvidersActive = 3
)

func newQuoteCmd() *cobra.Command {
	var (
		sourceCountry, destCountry, sourceCurrency, destCurrency string
		amount                                                   string
		sortBy                                                   string
		forceRefresh                                              bool
		configPath                                                string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Fetch aggregated quotes for a corridor",
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid amount: %v\n", err)
				os.Exit(exitInvalidParameter)
			}

			req := domain.QuoteRequest{
				SourceCountry:  strings.ToUpper(sourceCountry),
				DestCountry:    strings.ToUpper(destCountry),
				SourceCurrency: strings.ToUpper(sourceCurrency),
				DestCurrency:   strings.ToUpper(destCurrency),
				Amount:         amt,
				Options: domain.Options{
					ForceRefresh: forceRefresh,
					SortBy:       domain.SortBy(sortBy),
				},
			}

			exitCode, err := runQuote(cmd.Context(), configPath, req, cmd.OutOrStdout())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(exitCode)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceCountry, "source-country", "", "ISO-3166-1 alpha-2 source country")
	cmd.Flags().StringVar(&destCountry, "dest-country", "", "ISO-3166-1 alpha-2 destination country")
	cmd.Flags().StringVar(&sourceCurrency, "source-currency", "", "ISO-4217 source currency")
	cmd.Flags().StringVar(&destCurrency, "dest-currency", "", "ISO-4217 destination currency")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to send, in source currency")
	cmd.Flags().StringVar(&sortBy, "sort-by", string(domain.SortByBestRate), "best_rate, lowest_fee, fastest_time, or best_value")
	cmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "bypass the cache")
	cmd.Flags().StringVar(&configPath, "config", "", "path to configuration file")

	return cmd
}

func runQuote(ctx context.Context, configPath string, req domain.QuoteRequest, out io.Writer) (int, error) {
	mono, err := bootstrap(ctx, configPath)
	if err != nil {
		return exitInvalidParameter, err
	}
	defer mono.Close()

	registry := remitDI.GetRegistry(mono.Services())
	if len(registry.ActiveIDs(nil, nil)) == 0 {
		return exitNoProvidersActive, fmt.Errorf("no providers active")
	}

	coordinator := remitDI.GetCoordinator(mono.Services())
	result := coordinator.GetAllQuotes(ctx, req)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return exitInvalidParameter, err
	}

	if !result.Success {
		return exitInvalidParameter, nil
	}
	return exitSuccess, nil
}

// closableMonolith is satisfied by the concrete monolith returned from
// monolith.New, whose type is unexported and so cannot be named here.
type closableMonolith interface {
	monolith.Monolith
	Close() error
}

func bootstrap(ctx context.Context, configPath string) (closableMonolith, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(os.Stderr, logger.LevelWarn, cfg.App.Name, nil)

	cat, err := catalogdata.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	mono, err := monolith.New(cfg, log, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to create monolith: %w", err)
	}

	modules := []monolith.Module{&remit.Module{}}
	if err := mono.RegisterModules(modules...); err != nil {
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return nil, fmt.Errorf("failed to start modules: %w", err)
	}

	return mono, nil
}
