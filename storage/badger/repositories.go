package badger

// Repositories bundles all repositories backed by a single Backend.
type Repositories struct {
	Candidates *CandidateRepository
	Outcomes   *OutcomeRepository
	Models     *ModelRepository
	Reports    *ReportRepository

	backend *Backend
}

// OpenRepositories opens a Backend at filePath and wires every repository
// to it. Pass inMemory=true for a throwaway store.
func OpenRepositories(filePath string, inMemory bool) (*Repositories, error) {
	backend, err := OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Candidates: NewCandidateRepository(backend),
		Outcomes:   NewOutcomeRepository(backend),
		Models:     NewModelRepository(backend),
		Reports:    NewReportRepository(backend),
		backend:    backend,
	}, nil
}

// Backend exposes the underlying storage backend.
func (r *Repositories) Backend() *Backend {
	return r.backend
}

// Close closes the shared backend.
func (r *Repositories) Close() error {
	return r.backend.Close()
}
