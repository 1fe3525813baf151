package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapStage(t *testing.T) {
	base := fmt.Errorf("fetching stargazers: %w", ErrTransient)
	wrapped := WrapStage(StageCollection, base)

	stage, ok := StageOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, StageCollection, stage)
	assert.ErrorIs(t, wrapped, ErrTransient)
	assert.Contains(t, wrapped.Error(), "collection")
}

func TestWrapStageInnermostWins(t *testing.T) {
	inner := WrapStage(StagePreparation, ErrNotFound)
	outer := WrapStage(StageForecasting, fmt.Errorf("loading series: %w", inner))

	stage, ok := StageOf(outer)
	require.True(t, ok)
	assert.Equal(t, StagePreparation, stage)
	assert.ErrorIs(t, outer, ErrNotFound)
}

func TestWrapStageNil(t *testing.T) {
	assert.NoError(t, WrapStage(StageVisualization, nil))
}

func TestStageOfPlainError(t *testing.T) {
	_, ok := StageOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestFailureClass(t *testing.T) {
	wrapped := WrapStage(StagePreparation, fmt.Errorf("no dataset for golang_go: %w", ErrNotFound))
	assert.Equal(t, ErrNotFound.Error(), FailureClass(wrapped))

	plain := errors.New("disk on fire")
	assert.Equal(t, "disk on fire", FailureClass(plain))
}
