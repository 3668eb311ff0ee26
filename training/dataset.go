package training

import (
	"strings"
	"time"

	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/match"
)

// EngagementWindow is how long after presentation an engagement signal
// still counts toward a positive label.
const EngagementWindow = 14 * 24 * time.Hour

// LabelScoreThreshold is the presented final score an outcome must exceed,
// in addition to engagement, to be labeled positive. The label conditions
// on the score being optimized; a known feedback-loop risk carried over
// deliberately.
const LabelScoreThreshold = 0.7

// fixedFeatureColumns are the numeric columns every training run emits, in
// schema order, ahead of the run's one-hot vocabulary.
var fixedFeatureColumns = []string{
	"embedding_similarity",
	"ml_score",
	"industry_match",
	"geo_match",
	"name_similarity",
	"employee_count",
	"annual_revenue",
	"total_funding",
	"domain_health_score",
	"content_richness_score",
}

// BuildExample joins one outcome with its candidate profile into a labeled
// training example.
func BuildExample(outcome *core.Outcome, candidate *core.Candidate) *core.TrainingExample {
	features := map[string]float64{
		"embedding_similarity":   outcome.EmbeddingSimilarity,
		"ml_score":               outcome.MLScore,
		"industry_match":         outcome.RuleFeatures.IndustryMatch,
		"geo_match":              outcome.RuleFeatures.GeoMatch,
		"name_similarity":        outcome.RuleFeatures.NameSimilarity,
		"employee_count":         candidate.EmployeeCount,
		"annual_revenue":         candidate.AnnualRevenue,
		"total_funding":          candidate.TotalFunding,
		"domain_health_score":    candidate.DomainHealthScore,
		"content_richness_score": candidate.ContentRichnessScore,
	}
	features["industry_"+match.CategoryLabel(candidate.Industry)] = 1.0
	features["country_"+match.CategoryLabel(candidate.Country)] = 1.0

	label := 0
	if outcome.Engaged(EngagementWindow) && outcome.FinalScore > LabelScoreThreshold {
		label = 1
	}

	return &core.TrainingExample{
		ChallengeID: outcome.ChallengeID,
		CompanyKey:  outcome.CompanyKey,
		Features:    features,
		Label:       label,
	}
}

// PrepareFeatures builds the training matrix from labeled examples. Columns
// are the fixed numeric features followed by one-hot industry and country
// indicators in the order they are first observed across the examples. The
// returned feature names are the schema the fitted artifact must persist.
func PrepareFeatures(examples []*core.TrainingExample) (X [][]float64, y []int, featureNames []string) {
	featureNames = append(featureNames, fixedFeatureColumns...)

	// One-hot vocabulary in first-observed order. Each example carries
	// exactly one industry_* and one country_* key, so scanning per example
	// stays deterministic despite map iteration.
	seen := make(map[string]bool)
	for _, example := range examples {
		industryKey, countryKey := oneHotKeys(example.Features)
		if industryKey != "" && !seen[industryKey] {
			seen[industryKey] = true
			featureNames = append(featureNames, industryKey)
		}
		if countryKey != "" && !seen[countryKey] {
			seen[countryKey] = true
			featureNames = append(featureNames, countryKey)
		}
	}

	X = make([][]float64, len(examples))
	y = make([]int, len(examples))
	for i, example := range examples {
		row := make([]float64, len(featureNames))
		for j, name := range featureNames {
			row[j] = example.Features[name]
		}
		X[i] = row
		y[i] = example.Label
	}
	return X, y, featureNames
}

func oneHotKeys(features map[string]float64) (industryKey, countryKey string) {
	for name := range features {
		switch {
		case strings.HasPrefix(name, "industry_") && name != "industry_match":
			industryKey = name
		case strings.HasPrefix(name, "country_"):
			countryKey = name
		}
	}
	return industryKey, countryKey
}
