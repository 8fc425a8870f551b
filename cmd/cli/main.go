package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"agri-market/internal/data"
	"agri-market/internal/demographics"
	"agri-market/internal/logging"
	"agri-market/internal/market"
	"agri-market/internal/model"
	"agri-market/internal/report"
)

var errUsage = errors.New("usage")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if errors.Is(err, errUsage) {
		usage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "agri-cli: %v\n", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  agri-cli list    [--data prices.json] [--search rice] [--category Grains] [--market Delhi]")
	fmt.Fprintln(w, "  agri-cli cards   [filter flags]")
	fmt.Fprintln(w, "  agri-cli summary [--data prices.json]")
	fmt.Fprintln(w, "  agri-cli options [--data prices.json]")
	fmt.Fprintln(w, "  agri-cli movers  [filter flags] [--n 3]")
	fmt.Fprintln(w, "  agri-cli export  [filter flags] [--format csv|xlsx] [--out market.csv]")
	fmt.Fprintln(w, "  agri-cli demographics [--region west] [--crop corn] [--timeframe quarter] [--delay 1.2s]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "notes:")
	fmt.Fprintln(w, "  - without --data the built-in sample dataset is used")
	fmt.Fprintln(w, "  - summary always covers the whole dataset")
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}
	switch args[0] {
	case "list":
		return cmdList(args[1:], stdout)
	case "cards":
		return cmdCards(args[1:], stdout)
	case "summary":
		return cmdSummary(args[1:], stdout)
	case "options":
		return cmdOptions(args[1:], stdout)
	case "movers":
		return cmdMovers(args[1:], stdout)
	case "export":
		return cmdExport(args[1:], stdout)
	case "demographics":
		return cmdDemographics(args[1:], stdout)
	default:
		return errUsage
	}
}

type filterFlags struct {
	data     *string
	search   *string
	category *string
	market   *string
}

func newFlagSet(name string, withFilter bool) (*flag.FlagSet, *filterFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	ff := &filterFlags{
		data: fs.String("data", "", "Path to a JSON or YAML dataset file (default: built-in sample)"),
	}
	if withFilter {
		ff.search = fs.String("search", "", "Case-insensitive product substring")
		ff.category = fs.String("category", model.Wildcard, "Category, or 'all'")
		ff.market = fs.String("market", model.Wildcard, "Market, or 'all'")
	}
	return fs, ff
}

func (ff *filterFlags) criteria() model.FilterCriteria {
	return model.FilterCriteria{
		SearchTerm: *ff.search,
		Category:   *ff.category,
		Market:     *ff.market,
	}.Normalized()
}

func (ff *filterFlags) load() ([]model.MarketRecord, error) {
	var source data.Source = data.NewStaticSource()
	if *ff.data != "" {
		source = data.NewFileSource(*ff.data)
	}
	return source.Load(context.Background())
}

func cmdList(args []string, stdout io.Writer) error {
	fs, ff := newFlagSet("list", true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	records, err := ff.load()
	if err != nil {
		return err
	}

	matched := market.Filter(records, ff.criteria())
	if len(matched) == 0 {
		fmt.Fprintln(stdout, "No products found matching your criteria")
		return nil
	}
	for _, r := range matched {
		fmt.Fprintln(stdout, market.FormatRow(r))
	}
	fmt.Fprintf(stdout, "%d of %d records\n", len(matched), len(records))
	return nil
}

func cmdCards(args []string, stdout io.Writer) error {
	fs, ff := newFlagSet("cards", true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	records, err := ff.load()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(market.Cards(market.Filter(records, ff.criteria())))
}

func cmdSummary(args []string, stdout io.Writer) error {
	fs, ff := newFlagSet("summary", false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	records, err := ff.load()
	if err != nil {
		return err
	}
	s := market.Summarize(records)
	fmt.Fprintf(stdout, "Prices Up:      %d\n", s.UpCount)
	fmt.Fprintf(stdout, "Prices Down:    %d\n", s.DownCount)
	fmt.Fprintf(stdout, "Unchanged:      %d\n", s.UnchangedCount)
	fmt.Fprintf(stdout, "Active Markets: %d\n", s.ActiveMarketCount)
	return nil
}

func cmdOptions(args []string, stdout io.Writer) error {
	fs, ff := newFlagSet("options", false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	records, err := ff.load()
	if err != nil {
		return err
	}
	opts := market.Options(records)
	fmt.Fprintln(stdout, "Categories:")
	for _, v := range opts.Categories {
		fmt.Fprintf(stdout, "  %-12s %s\n", v, market.OptionLabel("category", v))
	}
	fmt.Fprintln(stdout, "Markets:")
	for _, v := range opts.Markets {
		fmt.Fprintf(stdout, "  %-12s %s\n", v, market.OptionLabel("market", v))
	}
	return nil
}

func cmdMovers(args []string, stdout io.Writer) error {
	fs, ff := newFlagSet("movers", true)
	n := fs.Int("n", 3, "Records per side (0=all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	records, err := ff.load()
	if err != nil {
		return err
	}
	m := market.RankMovers(market.Filter(records, ff.criteria()), *n)
	fmt.Fprintln(stdout, "Top gainers:")
	for i, r := range m.Gainers {
		fmt.Fprintf(stdout, "%2d. %s\n", i+1, market.FormatRow(r))
	}
	fmt.Fprintln(stdout, "Top losers:")
	for i, r := range m.Losers {
		fmt.Fprintf(stdout, "%2d. %s\n", i+1, market.FormatRow(r))
	}
	return nil
}

func cmdExport(args []string, stdout io.Writer) error {
	fs, ff := newFlagSet("export", true)
	format := fs.String("format", "csv", "csv or xlsx")
	outPath := fs.String("out", "", "Output path (default: stdout, csv only)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *format != "csv" && *format != "xlsx" {
		return fmt.Errorf("unknown format %q", *format)
	}
	if *format == "xlsx" && *outPath == "" {
		return errors.New("--out is required for xlsx")
	}
	records, err := ff.load()
	if err != nil {
		return err
	}
	matched := market.Filter(records, ff.criteria())

	w := stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if *format == "xlsx" {
		err = report.WriteMarketXLSX(w, matched, market.Summarize(records))
	} else {
		err = report.WriteMarketCSV(w, matched)
	}
	if err != nil {
		return err
	}
	if *outPath != "" {
		fmt.Fprintf(stdout, "Wrote %d rows to %s\n", len(matched), *outPath)
	}
	return nil
}

func cmdDemographics(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("demographics", flag.ContinueOnError)
	region := fs.String("region", "", "Region filter")
	crop := fs.String("crop", "", "Crop filter")
	timeframe := fs.String("timeframe", "", "month, quarter, year or 5year")
	delay := fs.Duration("delay", 0, "Loading delay (default 1.2s)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page := demographics.NewPage(*delay, logging.Discard())
	defer page.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := page.Select(ctx, demographics.Selection{Region: *region, Crop: *crop, Timeframe: *timeframe}); err != nil {
		return err
	}
	if _, err := page.WaitLoaded(ctx); err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(page.Payload())
}
