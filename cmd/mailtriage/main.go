// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	mailtriage "github.com/poiesic/mailtriage"
	"github.com/poiesic/mailtriage/catalog"
	"github.com/poiesic/mailtriage/config"
)

func main() {
	app := &cli.App{
		Name:  "mailtriage",
		Usage: "Batch triage of customer emails against a product catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML run configuration",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Classify and answer a batch of emails, writing result tables",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "products",
						Usage: "Product sheet (CSV path or http(s) export URL)",
					},
					&cli.StringFlag{
						Name:  "emails",
						Usage: "Email sheet (CSV path or http(s) export URL)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory for the result CSV tables",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Build the product index and run an ad-hoc query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "products",
						Usage: "Product sheet (CSV path or http(s) export URL)",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum products to return",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the config file named by --config and applies the
// command's flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}

	if v := c.String("products"); v != "" {
		cfg.IO.Products = v
	}
	if v := c.String("emails"); v != "" {
		cfg.IO.Emails = v
	}
	if v := c.String("output"); v != "" {
		cfg.IO.OutputDir = v
	}
	if v := c.Int("limit"); v > 0 {
		cfg.Retrieval.TopK = v
	}
	return cfg, nil
}

func runCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.IO.Products == "" {
		return fmt.Errorf("a product sheet is required (--products or io.products)")
	}
	if cfg.IO.Emails == "" {
		return fmt.Errorf("an email sheet is required (--emails or io.emails)")
	}

	ctx := c.Context
	loader := catalog.NewLoader()

	products, err := loader.LoadProducts(ctx, cfg.IO.Products)
	if err != nil {
		return fmt.Errorf("loading products: %w", err)
	}
	emails, err := loader.LoadEmails(ctx, cfg.IO.Emails)
	if err != nil {
		return fmt.Errorf("loading emails: %w", err)
	}
	slog.Info("sheets loaded", "products", len(products), "emails", len(emails))

	system, err := mailtriage.NewSystem(cfg)
	if err != nil {
		return err
	}
	defer system.Close()

	if err := system.BuildIndex(ctx, products); err != nil {
		return err
	}

	run, err := system.NewRun(products)
	if err != nil {
		return err
	}

	results, err := run.Run(ctx, emails)
	if err != nil {
		return err
	}

	writer, err := catalog.NewWriter(cfg.IO.OutputDir)
	if err != nil {
		return err
	}
	if err := writer.WriteResults(results); err != nil {
		return err
	}

	fmt.Printf("Processed %d emails: %d order responses, %d inquiry responses, %d failures\n",
		len(emails), len(results.OrderResponses), len(results.InquiryResponses), len(results.Failures))
	fmt.Printf("Result tables written to %s\n", cfg.IO.OutputDir)
	for _, failure := range results.Failures {
		fmt.Printf("  failed: %s (%s): %v\n", failure.EmailId, failure.Stage, failure.Err)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.IO.Products == "" {
		return fmt.Errorf("a product sheet is required (--products or io.products)")
	}

	ctx := c.Context

	products, err := catalog.NewLoader().LoadProducts(ctx, cfg.IO.Products)
	if err != nil {
		return fmt.Errorf("loading products: %w", err)
	}

	system, err := mailtriage.NewSystem(cfg)
	if err != nil {
		return err
	}
	defer system.Close()

	if err := system.BuildIndex(ctx, products); err != nil {
		return err
	}

	candidates, err := system.Search(ctx, query)
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		fmt.Println("No matching products.")
		return nil
	}
	for _, candidate := range candidates {
		fmt.Printf("%.3f  %s  %s (%s, %s) stock=%d\n",
			candidate.Score, candidate.ProductId, candidate.Name,
			candidate.Category, candidate.Season, candidate.Stock)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
