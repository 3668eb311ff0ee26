package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs; challenges are
// keyed this way so repeated queries map to the same challenge record.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Challenge is a free-text description of a problem looking for startup
// candidates, with optional industry and country filters.
type Challenge struct {
	Text     string
	Industry string // Optional candidate-store filter
	Country  string // Optional candidate-store filter
}

// ID returns the deterministic identifier for the challenge text.
func (c *Challenge) ID() ID {
	return IDFromContent(c.Text)
}

// Candidate is a startup company record with a precomputed description
// embedding and the numeric profile attributes used as model features.
// Candidate records are written by ingestion and read-only to scoring.
type Candidate struct {
	CompanyKey           string
	Name                 string
	Description          string // Text the embedding was generated from
	Industry             string
	Country              string
	Embedding            []float32 // Populated by the ingest pipeline; may be empty
	EmployeeCount        float64
	AnnualRevenue        float64
	TotalFunding         float64
	DomainHealthScore    float64
	ContentRichnessScore float64
	InsertedAt           time.Time
	UpdatedAt            time.Time
}

// RuleFeatures holds the rule-based features derived per (challenge, candidate)
// pair. They are always recomputed, never persisted on their own.
type RuleFeatures struct {
	IndustryMatch  float64 `json:"industry_match"`  // 1.0 or 0.0
	GeoMatch       float64 `json:"geo_match"`       // 1.0 or 0.0
	NameSimilarity float64 `json:"name_similarity"` // Jaccard word similarity in [0,1]
}

// ModelArtifact holds the learned scoring model parameters. Artifacts are
// immutable once written; a separate deployed pointer selects the active
// version. FeatureOrder is the canonical feature schema shared by training
// and serving and must always satisfy len(Coefficients) == len(FeatureOrder).
type ModelArtifact struct {
	ModelType         string             `json:"model_type"`
	Coefficients      []float64          `json:"coefficients"`
	Intercept         float64            `json:"intercept"`
	FeatureOrder      []string           `json:"feature_order"`
	TrainingSamples   int                `json:"training_samples,omitempty"`
	TestSamples       int                `json:"test_samples,omitempty"`
	AUCScore          float64            `json:"auc_score,omitempty"`
	Accuracy          float64            `json:"accuracy,omitempty"`
	Precision         float64            `json:"precision,omitempty"`
	Recall            float64            `json:"recall,omitempty"`
	F1Score           float64            `json:"f1_score,omitempty"`
	FeatureImportance map[string]float64 `json:"feature_importance,omitempty"`
	TrainedAt         time.Time          `json:"trained_at"`
	Version           string             `json:"model_version"`
}

// MatchResult is one ranked candidate produced for a single request.
// Results are built fresh per request and never persisted.
type MatchResult struct {
	CompanyKey          string       `json:"company_key"`
	Name                string       `json:"company_name"`
	Industry            string       `json:"industry"`
	Country             string       `json:"country"`
	EmbeddingSimilarity float64      `json:"embedding_similarity"`
	MLScore             float64      `json:"ml_score"`
	FinalScore          float64      `json:"final_score"`
	RuleFeatures        RuleFeatures `json:"rule_features"`
	Reason              string       `json:"reason"`
	Rank                int          `json:"rank"`
}

// MatchResponse is the full answer to one matching request.
type MatchResponse struct {
	Matches           []*MatchResult `json:"matches"`
	MatchesFound      int            `json:"matches_found"`
	AverageSimilarity float64        `json:"average_similarity"`
}

// Outcome is a historical shortlist row: a candidate that was presented for
// a challenge, with the scores it was presented with and the downstream
// engagement signal (if any). Outcomes are append-only training input.
type Outcome struct {
	ChallengeID         ID
	CompanyKey          string
	FinalScore          float64
	EmbeddingSimilarity float64
	MLScore             float64
	RuleFeatures        RuleFeatures
	CreatedAt           time.Time // When the candidate was presented
	EngagedAt           time.Time // Zero if no engagement signal was observed
}

// Engaged reports whether an engagement signal occurred within window of the
// presentation time.
func (o *Outcome) Engaged(window time.Duration) bool {
	if o.EngagedAt.IsZero() {
		return false
	}
	return !o.EngagedAt.Before(o.CreatedAt) && o.EngagedAt.Sub(o.CreatedAt) <= window
}

// TrainingExample is one labeled row of the training set.
type TrainingExample struct {
	ChallengeID ID
	CompanyKey  string
	Features    map[string]float64
	Label       int // 1 = engaged, 0 = not
}

// CurvePoints holds the points of a ROC or precision-recall curve.
// X/Y are FPR/TPR for ROC curves and Recall/Precision for PR curves.
type CurvePoints struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// EvaluationReport holds the full metric set for one trained model against a
// held-out labeled set. Reports are append-only history, written once per
// training or evaluation run.
type EvaluationReport struct {
	ModelVersion      string             `json:"model_version"`
	ModelType         string             `json:"model_type"`
	Accuracy          float64            `json:"accuracy"`
	Precision         float64            `json:"precision"`
	Recall            float64            `json:"recall"`
	F1Score           float64            `json:"f1_score"`
	AUCScore          float64            `json:"auc_score"`
	PRAUCScore        float64            `json:"pr_auc_score"`
	CrossValMean      float64            `json:"cross_val_mean"`
	CrossValStd       float64            `json:"cross_val_std"`
	ConfusionMatrix   [][]int            `json:"confusion_matrix"`
	ROCCurve          CurvePoints        `json:"roc_curve"`
	PRCurve           CurvePoints        `json:"pr_curve"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
	EvaluatedAt       time.Time          `json:"evaluated_at"`
}
