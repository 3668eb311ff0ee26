package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/theralab/startmatch/core"
)

// taxonomyEntry maps a label to the keywords that select it. Entries are
// checked in order and the first hit wins, so broader labels must come first.
type taxonomyEntry struct {
	label    string
	keywords []string
}

var industryTaxonomy = []taxonomyEntry{
	// Bare "ai" is deliberately absent: substring matching would fire on
	// words like "sustain" and "maintain".
	{"technology", []string{"tech", "software", "artificial intelligence", "machine learning", "data", "cloud", "saas"}},
	{"healthcare", []string{"health", "medical", "pharma", "biotech", "hospital", "healthcare", "medicine"}},
	{"finance", []string{"fintech", "finance", "banking", "payments", "crypto", "blockchain"}},
	{"ecommerce", []string{"ecommerce", "retail", "marketplace", "shopping", "online store"}},
	{"education", []string{"education", "edtech", "learning", "school", "university"}},
	{"energy", []string{"energy", "renewable", "solar", "wind", "clean energy"}},
	{"transportation", []string{"transport", "mobility", "logistics", "delivery", "autonomous"}},
	{"real_estate", []string{"real estate", "property", "housing", "construction"}},
}

var countryTaxonomy = []taxonomyEntry{
	{"united states", []string{"usa", "us", "united states", "america"}},
	{"canada", []string{"canada", "canadian"}},
	{"united kingdom", []string{"uk", "britain", "england", "united kingdom"}},
	{"germany", []string{"germany", "german"}},
	{"france", []string{"france", "french"}},
	{"australia", []string{"australia", "australian"}},
	{"singapore", []string{"singapore", "singaporean"}},
	{"india", []string{"india", "indian"}},
	{"china", []string{"china", "chinese"}},
	{"japan", []string{"japan", "japanese"}},
}

// ExtractIndustry returns the industry label whose keywords first appear in
// text, or "" when nothing matches.
func ExtractIndustry(text string) string {
	return matchTaxonomy(industryTaxonomy, text)
}

// ExtractCountry returns the country label whose keywords first appear in
// text, or "" when nothing matches.
func ExtractCountry(text string) string {
	return matchTaxonomy(countryTaxonomy, text)
}

func matchTaxonomy(taxonomy []taxonomyEntry, text string) string {
	lower := strings.ToLower(text)
	for _, entry := range taxonomy {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.label
			}
		}
	}
	return ""
}

// extractNameProxy pulls a potential company name out of challenge text:
// the first three capitalized words longer than two runes, joined and
// lowercased.
func extractNameProxy(text string) string {
	var picked []string
	for _, word := range strings.Fields(text) {
		r, _ := utf8.DecodeRuneInString(word)
		if unicode.IsUpper(r) && utf8.RuneCountInString(word) > 2 {
			picked = append(picked, word)
			if len(picked) == 3 {
				break
			}
		}
	}
	return strings.ToLower(strings.Join(picked, " "))
}

// jaccardWords computes the word-level Jaccard similarity of two strings.
func jaccardWords(a, b string) float64 {
	aWords := wordSet(a)
	bWords := wordSet(b)
	if len(aWords) == 0 || len(bWords) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range aWords {
		if _, ok := bWords[w]; ok {
			intersection++
		}
	}
	union := len(aWords) + len(bWords) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

// ExtractRuleFeatures derives the rule-based features for a challenge and
// candidate pair. It is pure and never fails: unknown inputs simply yield
// zero-valued features.
func ExtractRuleFeatures(challengeText string, candidate *core.Candidate) core.RuleFeatures {
	var features core.RuleFeatures

	challengeIndustry := ExtractIndustry(challengeText)
	candidateIndustry := strings.ToLower(candidate.Industry)
	if challengeIndustry != "" && strings.Contains(candidateIndustry, challengeIndustry) {
		features.IndustryMatch = 1.0
	}

	challengeCountry := ExtractCountry(challengeText)
	candidateCountry := strings.ToLower(candidate.Country)
	if challengeCountry != "" && strings.Contains(candidateCountry, challengeCountry) {
		features.GeoMatch = 1.0
	}

	nameProxy := extractNameProxy(challengeText)
	candidateName := strings.ToLower(candidate.Name)
	if nameProxy != "" && candidateName != "" {
		features.NameSimilarity = jaccardWords(nameProxy, candidateName)
	}

	return features
}
