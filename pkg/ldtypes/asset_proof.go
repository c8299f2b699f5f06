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

package ldtypes

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/kaleido-io/ledgerclient/pkg/rpcmsgs"
)

// AssetProof is the evidence returned by the Ledger or Auditor for one version (age) of an asset.
// It is immutable once constructed.
type AssetProof struct {
	id        string
	age       uint32
	nonce     string
	input     string
	hash      []byte
	prevHash  []byte
	signature []byte
}

func NewAssetProof(id string, age uint32, nonce, input string, hash, prevHash, signature []byte) *AssetProof {
	return &AssetProof{
		id:        id,
		age:       age,
		nonce:     nonce,
		input:     input,
		hash:      cloneOrEmpty(hash),
		prevHash:  cloneOrEmpty(prevHash),
		signature: cloneOrEmpty(signature),
	}
}

// AssetProofFromWire returns nil for a nil wire proof
func AssetProofFromWire(p *rpcmsgs.AssetProof) *AssetProof {
	if p == nil {
		return nil
	}
	return NewAssetProof(p.AssetID, p.Age, p.Nonce, p.Input, p.Hash, p.PrevHash, p.Signature)
}

func AssetProofsFromWire(proofs []*rpcmsgs.AssetProof) []*AssetProof {
	out := make([]*AssetProof, 0, len(proofs))
	for _, p := range proofs {
		if p != nil {
			out = append(out, AssetProofFromWire(p))
		}
	}
	return out
}

func (p *AssetProof) ToWire() *rpcmsgs.AssetProof {
	return &rpcmsgs.AssetProof{
		AssetID:   p.id,
		Age:       p.age,
		Nonce:     p.nonce,
		Input:     p.input,
		Hash:      p.Hash(),
		PrevHash:  p.PrevHash(),
		Signature: p.Signature(),
	}
}

func AssetProofsToWire(proofs []*AssetProof) []*rpcmsgs.AssetProof {
	out := make([]*rpcmsgs.AssetProof, len(proofs))
	for i, p := range proofs {
		out[i] = p.ToWire()
	}
	return out
}

func (p *AssetProof) ID() string        { return p.id }
func (p *AssetProof) Age() uint32       { return p.age }
func (p *AssetProof) Nonce() string     { return p.nonce }
func (p *AssetProof) Input() string     { return p.input }
func (p *AssetProof) Hash() []byte      { return bytes.Clone(p.hash) }
func (p *AssetProof) PrevHash() []byte  { return bytes.Clone(p.prevHash) }
func (p *AssetProof) Signature() []byte { return bytes.Clone(p.signature) }

// Equal compares every field except the signature
func (p *AssetProof) Equal(o *AssetProof) bool {
	if p == o {
		return true
	}
	if p == nil || o == nil {
		return false
	}
	return p.id == o.id &&
		p.age == o.age &&
		p.nonce == o.nonce &&
		p.input == o.input &&
		bytes.Equal(p.hash, o.hash) &&
		bytes.Equal(p.prevHash, o.prevHash)
}

func (p *AssetProof) HashEquals(hash []byte) bool {
	return bytes.Equal(p.hash, hash)
}

func (p *AssetProof) String() string {
	if p == nil {
		return "AssetProof{}"
	}
	return fmt.Sprintf("AssetProof{id=%s,age=%d,nonce=%s,input=%s,hash=%s,prev_hash=%s,signature=%s}",
		p.id, p.age, p.nonce, p.input,
		base64.StdEncoding.EncodeToString(p.hash),
		base64.StdEncoding.EncodeToString(p.prevHash),
		base64.StdEncoding.EncodeToString(p.signature),
	)
}

func cloneOrEmpty(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return bytes.Clone(b)
}
