package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/theralab/startmatch/core"
)

// Key prefixes for different data types
const (
	candidateRecordPrefix  = "canrec"
	candidateUpdatedPrefix = "canupd"
	outcomeRecordPrefix    = "outrec"
	artifactRecordPrefix   = "modart"
	deployedPointerKey     = "moddep"
	reportRecordPrefix     = "evarep"
)

// makeCandidateKey generates a key for a candidate record by company key.
func makeCandidateKey(companyKey string) []byte {
	return []byte(fmt.Sprintf("%s:%s", candidateRecordPrefix, companyKey))
}

// makeCandidateUpdatedKey generates a composite key for the updated-at index.
// Format: prefix:timestamp:companyKey
func makeCandidateUpdatedKey(updatedAt time.Time, companyKey string) []byte {
	prefix := candidateUpdatedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 + len(companyKey)
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(updatedAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], companyKey)
	return buf
}

// makeOutcomeKey generates a composite key for an outcome row.
// Format: prefix:timestamp:challengeID:companyKey
// Outcomes are stored directly under their created-at composite key so a
// lookback scan is a single prefix iteration in time order.
func makeOutcomeKey(createdAt time.Time, challengeID core.ID, companyKey string) []byte {
	prefix := outcomeRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 + len(companyKey)
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(challengeID))
	offset += 8
	copy(buf[offset:], companyKey)
	return buf
}

// makePartialOutcomeKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialOutcomeKey(createdAt time.Time) []byte {
	prefix := outcomeRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	return buf
}

// makeArtifactKey generates a key for a model artifact by version.
func makeArtifactKey(version string) []byte {
	return []byte(fmt.Sprintf("%s:%s", artifactRecordPrefix, version))
}

// makeDeployedPointerKey generates the key holding the deployed version.
func makeDeployedPointerKey() []byte {
	return []byte(deployedPointerKey)
}

// makeReportKey generates a composite key for an evaluation report.
// Format: prefix:timestamp:modelVersion
func makeReportKey(evaluatedAt time.Time, modelVersion string) []byte {
	prefix := reportRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 + len(modelVersion)
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(evaluatedAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], modelVersion)
	return buf
}
