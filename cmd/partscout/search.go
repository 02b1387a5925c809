package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"partscout/internal/config"
	"partscout/internal/domain"
	"partscout/internal/notify"
	"partscout/internal/pricing"
	"partscout/internal/search"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search every store once and print the merged products",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print JSON instead of a listing")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	cfg.LogFile = ""
	closeLog := setupLogging(cfg, os.Stderr)
	defer closeLog()

	out := cmd.OutOrStdout()
	warn := color.New(color.FgYellow)
	pub := notify.Func(func(n notify.Notice) {
		if !searchJSON {
			warn.Fprintf(cmd.ErrOrStderr(), "! %s\n", n.Message)
		}
	})

	engine, store, err := buildEngine(cfg, pub)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := engine.Search(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	if searchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Term     string           `json:"term"`
			Products []domain.Product `json:"products"`
			Failures []domain.Vendor  `json:"failures"`
		}{res.Term, res.Products, res.Failures})
	}
	printProducts(out, res)
	return nil
}

func printProducts(w io.Writer, res search.Result) {
	bold := color.New(color.Bold)
	inStock := color.New(color.FgGreen)
	outOfStock := color.New(color.FgRed)
	dim := color.New(color.Faint)

	bold.Fprintf(w, "%d products for %q\n\n", len(res.Products), res.Term)
	for _, p := range res.Products {
		bold.Fprintln(w, p.Name)
		if avg, ok := pricing.Average(p); ok {
			dim.Fprintf(w, "  average %s\n", pricing.Format(avg))
		}
		for _, o := range p.Info {
			line := fmt.Sprintf("  %-18s %12s", search.Label(o.Vendor), o.Price)
			if o.InStock {
				inStock.Fprintln(w, line+"  in stock")
			} else {
				outOfStock.Fprintln(w, line+"  out of stock")
			}
		}
		fmt.Fprintln(w)
	}
}
