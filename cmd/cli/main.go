package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"foliosync/api"
	"foliosync/cmd"
	"foliosync/internal"
	"foliosync/internal/util"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// One CLI invocation is one session: sign in, act on the loaded allocation,
// optionally persist, exit.

type positionRow struct {
	Ticker string  `csv:"ticker"`
	Weight float64 `csv:"weight"`
}

type equityRow struct {
	Date  string  `csv:"date"`
	Value float64 `csv:"value"`
}

var (
	tokenFile string
	saveAfter bool
)

func startSession(ctx context.Context) (*api.ApiHandler, error) {
	handler, err := cmd.InitializeDependencies()
	if err != nil {
		return nil, err
	}

	token := os.Getenv("FOLIO_ID_TOKEN")
	if tokenFile != "" {
		raw, err := os.ReadFile(tokenFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read token file: %w", err)
		}
		token = string(raw)
	}

	principal, err := handler.IdentityRepository.SignIn(ctx, strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("sign-in failed: %w", err)
	}
	if principal == nil {
		return nil, errors.New("no identity token provided - set FOLIO_ID_TOKEN or --token-file")
	}
	if loadErr := handler.SessionService.LoadError(); loadErr != nil {
		fmt.Printf("warning: could not load saved allocation, starting empty: %v\n", loadErr)
	}

	return handler, nil
}

func persistIfRequested(ctx context.Context, handler *api.ApiHandler) error {
	if !saveAfter {
		return nil
	}
	return handler.AllocationStore.Persist(ctx)
}

func printAllocation(handler *api.ApiHandler) {
	type allocationView struct {
		Positions   map[string]float64 `json:"positions"`
		TotalWeight float64            `json:"totalWeight"`
		Complete    bool               `json:"complete"`
	}
	snapshot := handler.AllocationStore.Snapshot()
	view := allocationView{
		Positions:   map[string]float64{},
		TotalWeight: snapshot.Total.InexactFloat64(),
		Complete:    snapshot.Complete,
	}
	for ticker, entry := range snapshot.Entries {
		view.Positions[ticker] = entry.Weight.InexactFloat64()
	}
	internal.Pprint(view)
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "foliosync",
		Short:        "sync a target portfolio allocation and request performance analysis",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "path to a file holding the identity token")
	rootCmd.PersistentFlags().BoolVar(&saveAfter, "save", false, "persist the allocation after the command")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "print the loaded allocation",
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := startSession(c.Context())
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)
			printAllocation(handler)
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "add <ticker> <weight>",
		Short: "add or overwrite one position",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := startSession(c.Context())
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)

			weight, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid weight %q: %w", args[1], err)
			}
			if err := handler.AllocationStore.Add(args[0], weight); err != nil {
				return err
			}
			printAllocation(handler)
			return persistIfRequested(c.Context(), handler)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "remove <ticker>",
		Short: "remove one position",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := startSession(c.Context())
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)

			handler.AllocationStore.Remove(args[0])
			printAllocation(handler)
			return persistIfRequested(c.Context(), handler)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "persist the loaded allocation to the document service",
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := startSession(c.Context())
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)
			return handler.AllocationStore.Persist(c.Context())
		},
	})

	importCmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "replace the allocation with positions from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := startSession(c.Context())
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rows := []positionRow{}
			if err := gocsv.UnmarshalFile(f, &rows); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			handler.AllocationStore.Clear()
			for _, row := range rows {
				if err := handler.AllocationStore.Add(row.Ticker, decimal.NewFromFloat(row.Weight)); err != nil {
					return fmt.Errorf("row %s: %w", row.Ticker, err)
				}
			}
			printAllocation(handler)
			return persistIfRequested(c.Context(), handler)
		},
	}
	rootCmd.AddCommand(importCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "export <file.csv>",
		Short: "write the loaded allocation to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := startSession(c.Context())
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)

			rows := []positionRow{}
			for _, entry := range handler.AllocationStore.Entries() {
				rows = append(rows, positionRow{
					Ticker: entry.Ticker,
					Weight: entry.Weight.InexactFloat64(),
				})
			}

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return gocsv.MarshalFile(&rows, f)
		},
	})

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "request an equity curve and risk metrics for the loaded allocation",
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := startSession(c.Context())
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)

			result, err := handler.AnalysisService.RequestAnalysis(c.Context())
			if err != nil {
				return err
			}
			internal.Pprint(result.Metrics)

			out, err := c.Flags().GetString("out")
			if err != nil || out == "" {
				return nil
			}
			rows := make([]equityRow, 0, len(result.Series))
			for _, point := range result.Series {
				rows = append(rows, equityRow{
					Date:  util.FormatDate(point.Date),
					Value: point.Value,
				})
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			return gocsv.MarshalFile(&rows, f)
		},
	}
	analyzeCmd.Flags().String("out", "", "write the equity curve to this CSV file")
	rootCmd.AddCommand(analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
