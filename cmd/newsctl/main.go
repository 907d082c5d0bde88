package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/mirror"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	apiURL   string
	timeout  time.Duration
	refresh  bool
	category string
	logLevel string
)

func newMirror() (*mirror.Mirror, *mirror.Client, error) {
	log, err := logger.New(logLevel, "console")
	if err != nil {
		return nil, nil, err
	}
	client := mirror.NewClient(apiURL, timeout)
	return mirror.New(client, mirror.DefaultWindow, log), client, nil
}

var headlinesCmd = &cobra.Command{
	Use:   "headlines",
	Short: "List the current global headlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := newMirror()
		if err != nil {
			return err
		}
		snap, err := m.Load(cmd.Context(), refresh)
		if err != nil {
			return err
		}
		switch {
		case snap.Stale:
			fmt.Fprintln(os.Stderr, "warning: server unavailable, showing previous results")
		case snap.Unchanged:
			fmt.Fprintln(os.Stderr, "no new headlines since the last load")
		}
		printArticles(mirror.Filter(snap.Articles, category))
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search headlines by city, country or title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := newMirror()
		if err != nil {
			return err
		}
		found, err := m.Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if len(found) == 0 {
			fmt.Println("No articles found.")
			return nil
		}
		printArticles(found)
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Count the current headlines per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := newMirror()
		if err != nil {
			return err
		}
		snap, err := m.Load(cmd.Context(), refresh)
		if err != nil {
			return err
		}
		counts := mirror.CategoryCounts(snap.Articles)
		cats := make([]string, 0, len(counts))
		for c := range counts {
			cats = append(cats, string(c))
		}
		sort.Strings(cats)
		for _, c := range cats {
			fmt.Printf("%-15s %d\n", c, counts[entity.Category(c)])
		}
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <text>",
	Short: "Check the credibility of a piece of text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := newMirror()
		if err != nil {
			return err
		}
		res, err := client.CheckCredibility(cmd.Context(), "", strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Printf("%s  %d/100 (%s)\n", res.Badge, res.CredibilityScore, res.Verdict)
		fmt.Printf("generative: %d/100 %s\n", res.Models.Generative.Score, res.Models.Generative.Verdict)
		fmt.Printf("classifier: %s %.0f%%\n", res.ClassifierLabel, res.ClassifierConfidence*100)
		if res.Explanation != "" {
			fmt.Println(res.Explanation)
		}
		for _, f := range res.RedFlags {
			fmt.Printf("  - %s\n", f)
		}
		return nil
	},
}

func printArticles(articles []entity.NewsArticle) {
	for _, a := range articles {
		place := utils.FirstNonEmpty(a.Location.City, a.Location.Country, entity.UnknownLocation)
		fmt.Printf("[%s] %s\n    %s | %s | credibility %d/100 | %s\n",
			entity.Badge(a.CredibilityScore), a.Title, a.Source, a.Category, a.CredibilityScore, place)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "newsctl",
		Short: "Command line client for the News Globe API",
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080/api/v1", "Base URL of the news API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level")

	headlinesCmd.Flags().BoolVar(&refresh, "refresh", false, "Force the server to refetch")
	headlinesCmd.Flags().StringVar(&category, "category", "", "Only show this category")
	categoriesCmd.Flags().BoolVar(&refresh, "refresh", false, "Force the server to refetch")

	rootCmd.AddCommand(headlinesCmd, searchCmd, categoriesCmd, verifyCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing newsctl: %s\n", err)
		os.Exit(1)
	}
}
