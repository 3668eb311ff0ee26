package match

import (
	"math"
	"strings"

	"github.com/theralab/startmatch/core"
)

// Weights controls the blend of semantic similarity and model prediction in
// the final score.
type Weights struct {
	Embedding float64
	ML        float64
}

// DefaultWeights favors semantic similarity over the learned model.
func DefaultWeights() Weights {
	return Weights{Embedding: 0.7, ML: 0.3}
}

// DefaultArtifact returns the fallback scoring model used when no trained
// model has been deployed yet.
func DefaultArtifact() *core.ModelArtifact {
	return &core.ModelArtifact{
		ModelType:    "logistic_regression",
		Coefficients: []float64{0.5, 0.3, 0.2},
		Intercept:    0.0,
		FeatureOrder: []string{"embedding_similarity", "industry_match", "geo_match"},
		Version:      "default",
	}
}

// CosineSimilarity computes the cosine similarity between two embedding
// vectors. Empty, mismatched, or zero-magnitude vectors yield 0.0 rather
// than an error.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) {
		return 0.0
	}
	return sim
}

// Scorer applies a model artifact and blend weights to score candidates.
type Scorer struct {
	artifact *core.ModelArtifact
	weights  Weights
}

// NewScorer creates a scorer for the given artifact. A nil artifact falls
// back to DefaultArtifact.
func NewScorer(artifact *core.ModelArtifact, weights Weights) *Scorer {
	if artifact == nil {
		artifact = DefaultArtifact()
	}
	return &Scorer{artifact: artifact, weights: weights}
}

// Artifact returns the model the scorer applies.
func (s *Scorer) Artifact() *core.ModelArtifact {
	return s.artifact
}

// MLScore evaluates the logistic model over the artifact's feature schema.
// Features absent from the map contribute 0.0.
func (s *Scorer) MLScore(features map[string]float64) float64 {
	z := s.artifact.Intercept
	for i, name := range s.artifact.FeatureOrder {
		z += s.artifact.Coefficients[i] * features[name]
	}
	return sigmoid(z)
}

// FinalScore blends semantic similarity and the model prediction, clamped
// to [0, 1].
func (s *Scorer) FinalScore(embeddingSim, mlScore float64) float64 {
	score := s.weights.Embedding*embeddingSim + s.weights.ML*mlScore
	return math.Min(1.0, math.Max(0.0, score))
}

// ServingFeatures builds the feature map for one candidate at serve time.
// The schema mirrors training: numeric profile columns plus one-hot
// industry and country indicators. The trained-at ml_score column has no
// serve-time analogue and is left absent, contributing 0.0.
func ServingFeatures(embeddingSim float64, rule core.RuleFeatures, candidate *core.Candidate) map[string]float64 {
	features := map[string]float64{
		"embedding_similarity":   embeddingSim,
		"industry_match":         rule.IndustryMatch,
		"geo_match":              rule.GeoMatch,
		"name_similarity":        rule.NameSimilarity,
		"employee_count":         candidate.EmployeeCount,
		"annual_revenue":         candidate.AnnualRevenue,
		"total_funding":          candidate.TotalFunding,
		"domain_health_score":    candidate.DomainHealthScore,
		"content_richness_score": candidate.ContentRichnessScore,
	}

	features["industry_"+CategoryLabel(candidate.Industry)] = 1.0
	features["country_"+CategoryLabel(candidate.Country)] = 1.0

	return features
}

// CategoryLabel normalizes an industry or country value for use in one-hot
// feature names. Training and serving must agree on this normalization or
// the one-hot columns silently stop lining up.
func CategoryLabel(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" {
		return "unknown"
	}
	return v
}

// Reason renders a human-readable explanation from the scoring signals.
func Reason(embeddingSim float64, rule core.RuleFeatures, mlScore float64) string {
	var reasons []string

	switch {
	case embeddingSim > 0.8:
		reasons = append(reasons, "Very high content similarity")
	case embeddingSim > 0.6:
		reasons = append(reasons, "High content similarity")
	case embeddingSim > 0.4:
		reasons = append(reasons, "Moderate content similarity")
	}

	if rule.IndustryMatch > 0 {
		reasons = append(reasons, "Industry match")
	}
	if rule.GeoMatch > 0 {
		reasons = append(reasons, "Geographic match")
	}
	if rule.NameSimilarity > 0.5 {
		reasons = append(reasons, "Company name similarity")
	}

	switch {
	case mlScore > 0.7:
		reasons = append(reasons, "Strong ML prediction")
	case mlScore > 0.5:
		reasons = append(reasons, "Moderate ML prediction")
	}

	if len(reasons) == 0 {
		return "General similarity"
	}
	return strings.Join(reasons, "; ")
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
