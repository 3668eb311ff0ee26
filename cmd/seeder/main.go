package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/theralab/startmatch"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/ingest"
)

// Built-in sample profiles for local development. Real deployments feed a
// JSON export through -src instead.
var profiles = []*core.Candidate{
	{CompanyKey: "gridpulse", Name: "GridPulse", Description: "real-time monitoring for solar and wind farms", Industry: "Energy", Country: "Germany", EmployeeCount: 42, AnnualRevenue: 3.1e6, TotalFunding: 8.5e6, DomainHealthScore: 0.82, ContentRichnessScore: 0.74},
	{CompanyKey: "medrelay", Name: "MedRelay", Description: "secure messaging between hospitals and clinics", Industry: "Healthcare", Country: "United States", EmployeeCount: 120, AnnualRevenue: 1.4e7, TotalFunding: 3.2e7, DomainHealthScore: 0.91, ContentRichnessScore: 0.88},
	{CompanyKey: "cartfuel", Name: "CartFuel", Description: "checkout optimization for online retail shops", Industry: "Ecommerce", Country: "United Kingdom", EmployeeCount: 18, AnnualRevenue: 9.0e5, TotalFunding: 2.0e6, DomainHealthScore: 0.67, ContentRichnessScore: 0.59},
	{CompanyKey: "lexlearn", Name: "LexLearn", Description: "adaptive language learning platform for schools", Industry: "Education", Country: "France", EmployeeCount: 35, AnnualRevenue: 2.2e6, TotalFunding: 5.0e6, DomainHealthScore: 0.78, ContentRichnessScore: 0.81},
	{CompanyKey: "freightloop", Name: "FreightLoop", Description: "logistics marketplace connecting shippers and trucking fleets", Industry: "Transportation", Country: "India", EmployeeCount: 210, AnnualRevenue: 4.5e7, TotalFunding: 6.0e7, DomainHealthScore: 0.85, ContentRichnessScore: 0.7},
	{CompanyKey: "ledgerly", Name: "Ledgerly", Description: "automated bookkeeping for small businesses", Industry: "Finance", Country: "Canada", EmployeeCount: 55, AnnualRevenue: 6.3e6, TotalFunding: 1.1e7, DomainHealthScore: 0.88, ContentRichnessScore: 0.77},
	{CompanyKey: "roofstockr", Name: "Roofstockr", Description: "data-driven valuation for rental property portfolios", Industry: "Real Estate", Country: "Australia", EmployeeCount: 27, AnnualRevenue: 1.8e6, TotalFunding: 4.0e6, DomainHealthScore: 0.72, ContentRichnessScore: 0.63},
	{CompanyKey: "kelpware", Name: "Kelpware", Description: "software platform for aquaculture farm management", Industry: "Technology", Country: "Japan", EmployeeCount: 14, AnnualRevenue: 5.0e5, TotalFunding: 1.5e6, DomainHealthScore: 0.61, ContentRichnessScore: 0.55},
	{CompanyKey: "voltshare", Name: "VoltShare", Description: "peer-to-peer charging network for electric vehicles", Industry: "Energy", Country: "Singapore", EmployeeCount: 64, AnnualRevenue: 7.2e6, TotalFunding: 2.5e7, DomainHealthScore: 0.8, ContentRichnessScore: 0.69},
	{CompanyKey: "claimsense", Name: "ClaimSense", Description: "machine learning triage for insurance claims", Industry: "Finance", Country: "United States", EmployeeCount: 95, AnnualRevenue: 1.2e7, TotalFunding: 4.8e7, DomainHealthScore: 0.9, ContentRichnessScore: 0.84},
	{CompanyKey: "paddockai", Name: "Paddock", Description: "satellite imagery analytics for crop yield forecasting", Industry: "Technology", Country: "Australia", EmployeeCount: 31, AnnualRevenue: 2.6e6, TotalFunding: 9.0e6, DomainHealthScore: 0.75, ContentRichnessScore: 0.71},
	{CompanyKey: "nursebridge", Name: "NurseBridge", Description: "staffing marketplace for travel nurses", Industry: "Healthcare", Country: "United Kingdom", EmployeeCount: 48, AnnualRevenue: 5.5e6, TotalFunding: 1.6e7, DomainHealthScore: 0.83, ContentRichnessScore: 0.66},
}

var seedFileName = flag.String("src", "", "JSON file of candidate profiles")
var storePath = flag.String("db", "./match_db", "path to BadgerDB store directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// profilesFromFile loads candidate profiles from a JSON array.
func profilesFromFile(filename string) ([]*core.Candidate, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var loaded []*core.Candidate
	if err := json.Unmarshal(bs, &loaded); err != nil {
		return nil, err
	}
	return loaded, nil
}

// seedBatched ingests candidates in batches so embedding requests stay small.
func seedBatched(ctx context.Context, pipeline *ingest.Pipeline, candidates []*core.Candidate, batchSize int) error {
	for i := 0; i < len(candidates); i += batchSize {
		end := i + batchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		if _, err := pipeline.AddCandidates(ctx, candidates[i:end]...); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	sys, err := startmatch.NewSystem(*storePath)
	if err != nil {
		panic(err)
	}
	defer sys.Close()

	ingester, err := sys.NewIngestPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	source := profiles
	if *seedFileName != "" {
		source, err = profilesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	}

	if err := seedBatched(context.Background(), ingester, source, 5); err != nil {
		panic(err)
	}

	slog.Info("seeded candidate profiles", "count", len(source))
}
