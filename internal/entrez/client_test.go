// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"testing"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

func TestClientDefaults(t *testing.T) {
	c := NewClient(types.FetchConfig{})
	if c.MaxResults() != defaultMaxResults {
		t.Errorf("MaxResults() = %d, want %d", c.MaxResults(), defaultMaxResults)
	}
	if c.BatchSize() != defaultBatchSize {
		t.Errorf("BatchSize() = %d, want %d", c.BatchSize(), defaultBatchSize)
	}
}

func TestClientConfigOverridesDefaults(t *testing.T) {
	c := NewClient(types.FetchConfig{MaxResults: 500, BatchSize: 25})
	if c.MaxResults() != 500 {
		t.Errorf("MaxResults() = %d, want 500", c.MaxResults())
	}
	if c.BatchSize() != 25 {
		t.Errorf("BatchSize() = %d, want 25", c.BatchSize())
	}
}
