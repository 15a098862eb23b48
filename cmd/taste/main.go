package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"alfredoptarigan/taste-recommender/internal/logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logging.Fatal().Err(err).Msg("❌ taste failed")
	}
}

func newApp() *cli.App {
	typeFlag := &cli.StringFlag{
		Name:    "type",
		Aliases: []string{"t"},
		Value:   "mixed",
		Usage:   "content type: tv, movie, podcast or mixed",
	}
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "print the full response as JSON",
	}

	return &cli.App{
		Name:  "taste",
		Usage: "Turn a description of what you like into TV, movie and podcast picks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "content catalog YAML file (defaults to the built-in catalog)",
				EnvVars: []string{"CATALOG_PATH"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logging.Init(logging.Config{Level: c.String("log-level"), Format: "console"})
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "recommend",
				Usage:     "Recommend content for a description",
				ArgsUsage: "<description>",
				Flags: []cli.Flag{
					typeFlag,
					&cli.StringFlag{Name: "mood", Usage: "current mood or energy level"},
					&cli.StringFlag{Name: "time", Usage: "time available"},
					&cli.StringFlag{Name: "situation", Usage: "viewing situation: alone, partner, family"},
					&cli.IntFlag{Name: "max", Value: 3, Usage: "maximum number of recommendations"},
					jsonFlag,
				},
				Action: RecommendAction,
			},
			{
				Name:      "profile",
				Usage:     "Extract a taste profile from a description",
				ArgsUsage: "<description>",
				Flags:     []cli.Flag{typeFlag, jsonFlag},
				Action:    ProfileAction,
			},
			{
				Name:      "contextual",
				Usage:     "Answer 'surprise me' style requests",
				ArgsUsage: "<request>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "request-type",
						Aliases:  []string{"r"},
						Required: true,
						Usage:    "something_like_but_not, dont_know, surprise_me or general",
					},
				},
				Action: ContextualAction,
			},
			{
				Name:   "catalog",
				Usage:  "List the content catalog",
				Action: CatalogAction,
			},
		},
	}
}
