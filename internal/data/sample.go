package data

import (
	"context"

	"agri-market/internal/model"

	"github.com/shopspring/decimal"
)

// StaticSource serves the built-in sample collection.
type StaticSource struct{}

func NewStaticSource() *StaticSource { return &StaticSource{} }

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Load(ctx context.Context) ([]model.MarketRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return SampleRecords(), nil
}

// SampleRecords returns a fresh copy of the sample Market Data collection.
func SampleRecords() []model.MarketRecord {
	p := decimal.RequireFromString
	return []model.MarketRecord{
		model.NewMarketRecord("1", "Rice (Basmati)", "Grains", "Delhi", p("45.5"), p("44.2"), "per kg", "2 hours ago"),
		model.NewMarketRecord("2", "Wheat", "Grains", "Mumbai", p("28.75"), p("29.1"), "per kg", "1 hour ago"),
		model.NewMarketRecord("3", "Tomatoes", "Vegetables", "Bangalore", p("35.0"), p("32.5"), "per kg", "30 minutes ago"),
		model.NewMarketRecord("4", "Onions", "Vegetables", "Chennai", p("22.8"), p("25.2"), "per kg", "45 minutes ago"),
		model.NewMarketRecord("5", "Apples", "Fruits", "Delhi", p("120.0"), p("115.0"), "per kg", "1 hour ago"),
		model.NewMarketRecord("6", "Bananas", "Fruits", "Kolkata", p("45.6"), p("48.2"), "per dozen", "2 hours ago"),
		model.NewMarketRecord("7", "Cotton", "Cash Crops", "Ahmedabad", p("5850.0"), p("5720.0"), "per quintal", "3 hours ago"),
		model.NewMarketRecord("8", "Sugarcane", "Cash Crops", "Pune", p("285.0"), p("290.0"), "per quintal", "1.5 hours ago"),
	}
}
