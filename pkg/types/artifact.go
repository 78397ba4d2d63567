// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Artifact is a converted payload waiting to be saved. It lives only until
// the save trigger returns.
type Artifact struct {
	// Name is the suggested file name, see ArtifactName.
	Name string

	// Source is the name of the file the artifact was converted from.
	Source string

	// Data is the converted payload as returned by the service.
	Data []byte
}

// OutcomeStatus is the result of one file in a batch.
type OutcomeStatus string

const (
	OutcomeConverted OutcomeStatus = "converted"
	OutcomeFailed    OutcomeStatus = "failed"
)

// Outcome records what happened to one file of a batch.
type Outcome struct {
	BatchID      string        `json:"batch_id" yaml:"batch_id"`
	File         string        `json:"file" yaml:"file"`
	Size         int64         `json:"size" yaml:"size"`
	Format       Format        `json:"format" yaml:"format"`
	Status       OutcomeStatus `json:"status" yaml:"status"`
	Message      string        `json:"message,omitempty" yaml:"message,omitempty"`
	ArtifactPath string        `json:"artifact_path,omitempty" yaml:"artifact_path,omitempty"`
	At           time.Time     `json:"at" yaml:"at"`
}
