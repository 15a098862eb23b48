package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"alfredoptarigan/taste-recommender/internal/catalog"
	"alfredoptarigan/taste-recommender/internal/models"
	"alfredoptarigan/taste-recommender/internal/services"
)

func newService(c *cli.Context) (services.TasteService, error) {
	patterns, err := catalog.DefaultPatterns()
	if err != nil {
		return nil, fmt.Errorf("failed to load patterns: %w", err)
	}
	content, err := catalog.LoadContent(c.String("catalog"))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return services.NewDefaultTasteService(patterns, content, services.DefaultMaxResults), nil
}

func inputText(c *cli.Context) (string, error) {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return "", errors.New("a description is required")
	}
	return text, nil
}

func printJSON(c *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(data))
	return err
}

func RecommendAction(c *cli.Context) error {
	text, err := inputText(c)
	if err != nil {
		return err
	}
	svc, err := newService(c)
	if err != nil {
		return err
	}

	resp, err := svc.Recommend(services.WithSource(c.Context, "cli"), models.RecommendRequest{
		UserInput:        text,
		ContentType:      c.String("type"),
		CurrentMood:      c.String("mood"),
		TimeAvailable:    c.String("time"),
		ViewingSituation: c.String("situation"),
		MaxResults:       c.Int("max"),
	})
	if err != nil {
		return fmt.Errorf("failed to recommend: %w", err)
	}

	if c.Bool("json") {
		return printJSON(c, resp)
	}
	_, err = fmt.Fprintln(c.App.Writer, resp.FormattedText)
	return err
}

func ProfileAction(c *cli.Context) error {
	text, err := inputText(c)
	if err != nil {
		return err
	}
	svc, err := newService(c)
	if err != nil {
		return err
	}

	resp, err := svc.ExtractProfile(c.Context, models.ProfileRequest{
		UserInput:   text,
		ContentType: c.String("type"),
	})
	if err != nil {
		return fmt.Errorf("failed to extract profile: %w", err)
	}

	if c.Bool("json") {
		return printJSON(c, resp)
	}
	_, err = fmt.Fprintln(c.App.Writer, resp.Summary)
	return err
}

func ContextualAction(c *cli.Context) error {
	text, err := inputText(c)
	if err != nil {
		return err
	}
	svc, err := newService(c)
	if err != nil {
		return err
	}

	resp, err := svc.Contextual(c.Context, models.ContextualRequest{
		UserInput:   text,
		RequestType: c.String("request-type"),
	})
	if err != nil {
		return fmt.Errorf("failed to handle request: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, resp.Response)
	return err
}

func CatalogAction(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}

	entries := svc.Catalog()
	w := c.App.Writer
	fmt.Fprintf(w, "%-32s %-36s %-16s %-14s\n", "ID", "Title", "Type", "Platform")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, e := range entries {
		fmt.Fprintf(w, "%-32s %-36s %-16s %-14s\n", e.ID, e.Title, e.ContentType, e.Platform)
	}
	fmt.Fprintf(w, "\nTotal: %d items\n", len(entries))
	return nil
}
