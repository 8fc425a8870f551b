package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"agri-market/internal/data"
	"agri-market/internal/logging"
	"agri-market/internal/model"
)

// snapshot writes a dataset file the file source can serve. Records come
// from the remote endpoint, or the built-in sample with --sample, merged
// over an optional seed file.
func main() {
	var (
		remoteURL  = flag.String("url", os.Getenv("AGRI_DATA_REMOTE_URL"), "Remote dataset URL")
		outputPath = flag.String("output", "data/prices.yaml", "Output file path (.json, .yaml or .yml)")
		seedFile   = flag.String("seed", "", "Existing dataset whose records are kept unless refreshed")
		sample     = flag.Bool("sample", false, "Use the built-in sample instead of the remote endpoint")
		timeout    = flag.Duration("timeout", 30*time.Second, "Fetch timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fresh, err := fetch(ctx, *remoteURL, *sample)
	if err != nil {
		log.Fatalf("Failed to fetch records: %v", err)
	}
	fmt.Printf("Fetched %d records\n", len(fresh))

	var seed []model.MarketRecord
	if *seedFile != "" {
		f, err := data.LoadDatasetFile(*seedFile)
		if err != nil {
			log.Fatalf("Failed to load seed file: %v", err)
		}
		seed = f.Records
		fmt.Printf("Loaded %d existing records from seed file\n", len(seed))
	}

	records, err := data.PrepareRecords(mergeRecords(seed, fresh))
	if err != nil {
		log.Fatalf("Merged dataset is invalid: %v", err)
	}

	out := &data.DatasetFile{
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Records:   records,
	}
	if err := data.SaveDatasetFile(*outputPath, out); err != nil {
		log.Fatalf("Failed to save dataset: %v", err)
	}
	fmt.Printf("Saved %d records to %s\n", len(records), *outputPath)
}

func fetch(ctx context.Context, remoteURL string, sample bool) ([]model.MarketRecord, error) {
	if sample {
		return data.SampleRecords(), nil
	}
	if remoteURL == "" {
		return nil, errors.New("--url (or AGRI_DATA_REMOTE_URL) is required unless --sample is set")
	}
	src := data.NewRemoteSource(remoteURL, os.Getenv("AGRI_DATA_API_KEY"), nil, logging.Discard())
	return src.Load(ctx)
}

// mergeRecords keeps seed order, replacing records whose id reappears in
// fresh and appending records new in fresh.
func mergeRecords(seed, fresh []model.MarketRecord) []model.MarketRecord {
	byID := make(map[string]model.MarketRecord, len(fresh))
	for _, r := range fresh {
		byID[r.ID] = r
	}

	out := make([]model.MarketRecord, 0, len(seed)+len(fresh))
	used := make(map[string]bool, len(fresh))
	for _, r := range seed {
		if f, ok := byID[r.ID]; ok {
			r = f
			used[r.ID] = true
		}
		out = append(out, r)
	}
	for _, r := range fresh {
		if !used[r.ID] {
			out = append(out, r)
		}
	}
	return out
}
