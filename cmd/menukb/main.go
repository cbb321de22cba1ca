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
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/menukb"
	"github.com/poiesic/menukb/config"
	"github.com/poiesic/menukb/retrieval"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the CLI. extra is appended to the options of every
// database the commands open.
func newApp(extra ...menukb.DatabaseOption) *cli.App {
	open := func(c *cli.Context, opts ...menukb.DatabaseOption) (*menukb.Database, error) {
		cfg, ok := c.App.Metadata[configKey].(*config.Config)
		if !ok {
			return nil, fmt.Errorf("configuration not loaded")
		}
		db, err := menukb.Open(c.Context, cfg, append(opts, extra...)...)
		if err != nil {
			return nil, fmt.Errorf("failed to open knowledge base: %w", err)
		}
		return db, nil
	}

	return &cli.App{
		Name:  "menukb",
		Usage: "Question answering over restaurant menus",
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
				Usage:   "Path to YAML configuration file",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "Build the knowledge base from the catalog and cache it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "catalog",
						Usage: "Path to the scraped catalog JSON (overrides the config)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Rebuild even when a valid cache exists",
					},
				},
				Action: func(c *cli.Context) error {
					return buildCommand(c, open)
				},
			},
			{
				Name:      "ask",
				Usage:     "Answer a question, or read one question per line from stdin",
				ArgsUsage: "[question]",
				Action: func(c *cli.Context) error {
					return askCommand(c, open)
				},
			},
			{
				Name:      "search",
				Usage:     "List the menu items closest to a query",
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "k",
						Usage: "Number of results",
						Value: 5,
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Only items whose location contains this text",
					},
				},
				Action: func(c *cli.Context) error {
					return searchCommand(c, open)
				},
			},
			{
				Name:      "locations",
				Usage:     "List restaurants whose location contains the given text",
				ArgsUsage: "<location>",
				Action: func(c *cli.Context) error {
					return locationsCommand(c, open)
				},
			},
			{
				Name:      "price",
				Usage:     "Show the price range of a restaurant",
				ArgsUsage: "<restaurant>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "location",
						Usage: "Only items whose location contains this text",
					},
				},
				Action: func(c *cli.Context) error {
					return priceCommand(c, open)
				},
			},
		},
	}
}

type opener func(c *cli.Context, opts ...menukb.DatabaseOption) (*menukb.Database, error)

// setup loads the configuration and installs the default logger. The
// --log-level flag wins over the configured level.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[configKey] = cfg

	levelStr := cfg.Logging.Level
	if c.IsSet("log-level") {
		levelStr = c.String("log-level")
	}
	level, err := config.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}

func buildCommand(c *cli.Context, open opener) error {
	if path := c.String("catalog"); path != "" {
		c.App.Metadata[configKey].(*config.Config).Catalog.Path = path
	}
	opts := []menukb.DatabaseOption{menukb.WithProgress(c.App.ErrWriter)}
	if c.Bool("force") {
		opts = append(opts, menukb.WithRebuild())
	}

	db, err := open(c, opts...)
	if err != nil {
		return err
	}
	defer db.Close()

	knowledge := db.KnowledgeBase()
	fmt.Fprintf(c.App.Writer, "Knowledge base ready: %d restaurants, %d menu items\n",
		len(knowledge.Restaurants()), len(knowledge.Items()))
	return nil
}

func askCommand(c *cli.Context, open opener) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))

	db, err := open(c)
	if err != nil {
		return err
	}
	defer db.Close()

	session := db.NewSession()
	if question != "" {
		fmt.Fprintln(c.App.Writer, db.Ask(c.Context, session, question))
		return nil
	}
	return askLoop(c.Context, db, session, c.App.Reader, c.App.Writer)
}

// askLoop answers one question per input line within a single session.
func askLoop(ctx context.Context, db *menukb.Database, session *retrieval.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		fmt.Fprintln(out, db.Ask(ctx, session, question))
	}
	return scanner.Err()
}

func searchCommand(c *cli.Context, open opener) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("search query is required")
	}
	if c.Int("k") <= 0 {
		return fmt.Errorf("k must be greater than 0")
	}

	db, err := open(c)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, item := range db.KnowledgeBase().Search(c.Context, query, c.Int("k"), c.String("location")) {
		fmt.Fprintf(c.App.Writer, "%s (%s): %s ₹%.0f\n", item.RestaurantName, item.Location, item.Name, item.Price)
	}
	return nil
}

func locationsCommand(c *cli.Context, open opener) error {
	location := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if location == "" {
		return fmt.Errorf("location is required")
	}

	db, err := open(c)
	if err != nil {
		return err
	}
	defer db.Close()

	names := db.KnowledgeBase().LocationsFor(location)
	if len(names) == 0 {
		fmt.Fprintf(c.App.Writer, "No restaurants found in %s.\n", location)
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(c.App.Writer, name)
	}
	return nil
}

func priceCommand(c *cli.Context, open opener) error {
	restaurant := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if restaurant == "" {
		return fmt.Errorf("restaurant name is required")
	}

	db, err := open(c)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintln(c.App.Writer, db.KnowledgeBase().PriceRange(restaurant, c.String("location")))
	return nil
}
