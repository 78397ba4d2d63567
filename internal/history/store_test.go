// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/extract-client/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.HistoryConfig{StateDir: t.TempDir(), MaxResults: 2})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func outcome(batch, file string, status types.OutcomeStatus) types.Outcome {
	return types.Outcome{
		BatchID: batch,
		File:    file,
		Size:    42,
		Format:  types.FormatTable,
		Status:  status,
		At:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a := outcome("b1", "a.pdf", types.OutcomeConverted)
	a.ArtifactPath = "/out/a_extracted.xlsx"
	b := outcome("b1", "b.pdf", types.OutcomeFailed)
	b.Message = "corrupt pdf"
	c := outcome("b2", "c.pdf", types.OutcomeConverted)

	for _, o := range []types.Outcome{a, b, c} {
		require.NoError(t, s.Record(ctx, o))
	}

	// Default limit comes from MaxResults.
	got, err := s.Recent(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c.pdf", got[0].File)
	assert.Equal(t, "b.pdf", got[1].File)
	assert.Equal(t, "corrupt pdf", got[1].Message)
	assert.Equal(t, types.FormatTable, got[1].Format)
	assert.True(t, got[1].At.Equal(b.At))

	got, err = s.Recent(ctx, Filter{BatchID: "b1", Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/out/a_extracted.xlsx", got[1].ArtifactPath)

	got, err = s.Recent(ctx, Filter{Status: types.OutcomeFailed, Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b.pdf", got[0].File)

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[types.OutcomeConverted])
	assert.Equal(t, 1, counts[types.OutcomeFailed])
}

func TestRecord_DefaultsTimestamp(t *testing.T) {
	s := testStore(t)
	o := outcome("b1", "a.pdf", types.OutcomeConverted)
	o.At = time.Time{}
	require.NoError(t, s.Record(context.Background(), o))

	got, err := s.Recent(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].At.IsZero())
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(types.HistoryConfig{StateDir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Record(context.Background(), outcome("b1", "a.pdf", types.OutcomeConverted)))
	require.NoError(t, s.Close())

	s, err = Open(types.HistoryConfig{StateDir: dir})
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Recent(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpen_RequiresStateDir(t *testing.T) {
	_, err := Open(types.HistoryConfig{})
	assert.Error(t, err)
}
