package match

import "github.com/theralab/startmatch/core"

// MatchMonitor provides hooks to observe the matching process.
// Implement this interface to track intermediate steps during a match run.
type MatchMonitor interface {
	Start(challengeText string)
	AfterEmbedding(dimensions int)
	AfterCandidateQuery(candidates int)
	CandidateScored(result *core.MatchResult)
	CandidateSkipped(companyKey string)
	Finish(response *core.MatchResponse)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                      {}
func (n *noopMonitor) AfterEmbedding(_ int)                {}
func (n *noopMonitor) AfterCandidateQuery(_ int)           {}
func (n *noopMonitor) CandidateScored(_ *core.MatchResult) {}
func (n *noopMonitor) CandidateSkipped(_ string)           {}
func (n *noopMonitor) Finish(_ *core.MatchResponse)        {}
