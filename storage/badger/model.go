// Copyright 2025 Theralab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage"
)

// ModelRepository implements storage.ModelRepository for BadgerDB.
//
// Artifacts are immutable once written. The deployed pointer is a single
// key updated in its own transaction, so a reader either sees the previous
// version or the new one, never a partial write.
type ModelRepository struct {
	backend *Backend
}

var _ storage.ModelRepository = (*ModelRepository)(nil)

// NewModelRepository creates a new ModelRepository.
func NewModelRepository(backend *Backend) *ModelRepository {
	return &ModelRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns the database handle.
func (r *ModelRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ModelRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutArtifact stores a new artifact version. Versions are immutable:
// writing an existing version fails with ErrDuplicateKey.
func (r *ModelRepository) PutArtifact(ctx context.Context, artifact *core.ModelArtifact) error {
	if artifact == nil || artifact.Version == "" {
		return fmt.Errorf("%w: artifact version is required", storage.ErrInvalidQuery)
	}

	value, err := storage.MarshalArtifact(artifact)
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeArtifactKey(artifact.Version)
		_, err := tx.Get(key)
		if err == nil {
			return fmt.Errorf("%w: artifact version %s", storage.ErrDuplicateKey, artifact.Version)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetArtifact retrieves an artifact by version.
func (r *ModelRepository) GetArtifact(ctx context.Context, version string) (*core.ModelArtifact, error) {
	var artifact *core.ModelArtifact
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		artifact, err = r.readArtifact(tx, version)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

// Deployed retrieves the currently deployed artifact.
func (r *ModelRepository) Deployed(ctx context.Context) (*core.ModelArtifact, error) {
	var artifact *core.ModelArtifact
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDeployedPointerKey())
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNoDeployedModel
			}
			return err
		}

		var version string
		if err := item.Value(func(val []byte) error {
			version = string(val)
			return nil
		}); err != nil {
			return err
		}

		artifact, err = r.readArtifact(tx, version)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

// Promote atomically advances the deployed pointer to the given version.
func (r *ModelRepository) Promote(ctx context.Context, version string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		// The version must exist before the pointer may select it
		if _, err := tx.Get(makeArtifactKey(version)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: artifact version %s", storage.ErrNotFound, version)
			}
			return err
		}

		if err := tx.Set(makeDeployedPointerKey(), []byte(version)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readArtifact reads and unmarshals an artifact within a transaction.
func (r *ModelRepository) readArtifact(tx *badger.Txn, version string) (*core.ModelArtifact, error) {
	item, err := tx.Get(makeArtifactKey(version))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: artifact version %s", storage.ErrNotFound, version)
		}
		return nil, err
	}

	var artifact *core.ModelArtifact
	err = item.Value(func(val []byte) error {
		var err error
		artifact, err = storage.UnmarshalArtifact(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return artifact, nil
}
