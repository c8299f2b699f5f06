// Copyright © 2024 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package proofstore pins the asset proofs the client has accepted in a local SQL
// database. A proof that arrives later for an asset age already recorded must match
// what was recorded, otherwise the history of the asset has been rewritten.
package proofstore

import (
	"context"
	"errors"
	"time"

	"github.com/kaleido-io/ledgerclient/internal/msgs"
	"github.com/kaleido-io/ledgerclient/internal/persistence"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
	"github.com/kaleido-io/ledgerclient/pkg/ldtypes"
	"github.com/kaleido-io/ledgerclient/pkg/log"
	"gorm.io/gorm/clause"
)

type Source string

const (
	SourceLedger  Source = "ledger"
	SourceAuditor Source = "auditor"
)

type Store interface {
	// RecordProofs records proofs not seen before, and checks the ones already recorded
	// for the same asset, age and source are unchanged
	RecordProofs(ctx context.Context, source Source, proofs []*ldtypes.AssetProof) error
	// ListProofs returns the recorded proofs of an asset, ordered by age then source
	ListProofs(ctx context.Context, assetID string) ([]*RecordedProof, error)
	Close()
}

type RecordedProof struct {
	Source  Source              `json:"source"`
	Proof   *ldtypes.AssetProof `json:"-"`
	Created time.Time           `json:"created"`
}

type dbAssetProof struct {
	AssetID   string `gorm:"column:asset_id;primaryKey"`
	Age       int64  `gorm:"column:age;primaryKey"`
	Source    string `gorm:"column:source;primaryKey"`
	Nonce     string `gorm:"column:nonce"`
	Input     string `gorm:"column:input"`
	Hash      []byte `gorm:"column:hash"`
	PrevHash  []byte `gorm:"column:prev_hash"`
	Signature []byte `gorm:"column:signature"`
	Created   int64  `gorm:"column:created;autoCreateTime:nano"`
}

func (dbAssetProof) TableName() string {
	return "asset_proofs"
}

func (r *dbAssetProof) toProof() *ldtypes.AssetProof {
	return ldtypes.NewAssetProof(r.AssetID, uint32(r.Age), r.Nonce, r.Input, r.Hash, r.PrevHash, r.Signature)
}

type store struct {
	p persistence.Persistence
}

// New opens the configured database, migrating the schema unless disabled
func New(ctx context.Context, conf *ldconf.ProofStoreConfig) (Store, error) {
	p, err := persistence.NewPersistence(ctx, conf)
	if err != nil {
		return nil, ldtypes.WrapClientError(ctx, ldtypes.StatusClientDatabaseError, err, msgs.MsgPersistenceInitFailed)
	}
	return NewWithPersistence(p), nil
}

func NewWithPersistence(p persistence.Persistence) Store {
	return &store{p: p}
}

func (s *store) Close() {
	s.p.Close()
}

func (s *store) RecordProofs(ctx context.Context, source Source, proofs []*ldtypes.AssetProof) error {
	rows := make([]*dbAssetProof, 0, len(proofs))
	for _, p := range proofs {
		if p != nil {
			rows = append(rows, &dbAssetProof{
				AssetID:   p.ID(),
				Age:       int64(p.Age()),
				Source:    string(source),
				Nonce:     p.Nonce(),
				Input:     p.Input(),
				Hash:      p.Hash(),
				PrevHash:  p.PrevHash(),
				Signature: p.Signature(),
			})
		}
	}
	if len(rows) == 0 {
		return nil
	}

	err := s.p.Transaction(ctx, func(ctx context.Context, dbTX persistence.DBTX) error {
		err := dbTX.DB().
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(rows).
			Error
		if err != nil {
			return ldtypes.WrapClientError(ctx, ldtypes.StatusClientDatabaseError, err, msgs.MsgProofStoreWriteFailed, rows[0].AssetID)
		}
		for _, row := range rows {
			var recorded []*dbAssetProof
			err := dbTX.DB().
				Where("asset_id = ?", row.AssetID).
				Where("age = ?", row.Age).
				Where("source = ?", row.Source).
				Limit(1).
				Find(&recorded).
				Error
			if err != nil {
				return ldtypes.WrapClientError(ctx, ldtypes.StatusClientDatabaseError, err, msgs.MsgProofStoreReadFailed, row.AssetID)
			}
			if len(recorded) == 0 || !recorded[0].toProof().Equal(row.toProof()) {
				log.L(ctx).Errorf("Recorded %s proof for asset %s age %d has changed", row.Source, row.AssetID, row.Age)
				return ldtypes.NewClientError(ctx, ldtypes.StatusInconsistentStates, msgs.MsgProofStoreProofMismatch, row.Source, row.AssetID, row.Age)
			}
		}
		dbTX.AddPostCommit(func(ctx context.Context) {
			log.L(ctx).Debugf("Recorded %d %s proofs", len(rows), source)
		})
		return nil
	})
	var ce *ldtypes.ClientError
	if err != nil && !errors.As(err, &ce) {
		// begin or commit failed
		return ldtypes.WrapClientError(ctx, ldtypes.StatusClientDatabaseError, err, msgs.MsgProofStoreWriteFailed, rows[0].AssetID)
	}
	return err
}

func (s *store) ListProofs(ctx context.Context, assetID string) ([]*RecordedProof, error) {
	var rows []*dbAssetProof
	err := s.p.DB().
		WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("age").
		Order("source").
		Find(&rows).
		Error
	if err != nil {
		return nil, ldtypes.WrapClientError(ctx, ldtypes.StatusClientDatabaseError, err, msgs.MsgProofStoreReadFailed, assetID)
	}
	recorded := make([]*RecordedProof, len(rows))
	for i, row := range rows {
		recorded[i] = &RecordedProof{
			Source:  Source(row.Source),
			Proof:   row.toProof(),
			Created: time.Unix(0, row.Created),
		}
	}
	return recorded, nil
}
