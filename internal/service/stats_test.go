package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
)

func newStatsFixture() (StatsService, *mockAttributeRepo, *mockResultRepo) {
	attributes := &mockAttributeRepo{}
	results := &mockResultRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewStatsService(logger, attributes, results), attributes, results
}

func players() [2]*entity.Player {
	return [2]*entity.Player{
		{ID: "p1", Name: "Squall", Kind: entity.KindCharacter},
		{ID: "p2", Name: "Rinoa", Kind: entity.KindCharacter},
	}
}

func TestStatsService_MatchFinished(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		result entity.Result
		p1     map[string]int64
		p2     map[string]int64
	}{
		{
			name:   "Winner and loser",
			result: entity.Result{GameID: "g1", Reason: entity.EndComplete, Players: players(), Winner: "p1"},
			p1:     map[string]int64{attrPlayed: 1, attrWins: 1},
			p2:     map[string]int64{attrPlayed: 1, attrLosses: 1},
		},
		{
			name:   "Tie",
			result: entity.Result{GameID: "g1", Reason: entity.EndComplete, Players: players(), Tie: true},
			p1:     map[string]int64{attrPlayed: 1, attrTies: 1},
			p2:     map[string]int64{attrPlayed: 1, attrTies: 1},
		},
		{
			name:   "Forfeit",
			result: entity.Result{GameID: "g1", Reason: entity.EndForfeit, Players: players(), Forfeiter: "p2"},
			p1:     map[string]int64{attrPlayed: 1, attrWins: 1},
			p2:     map[string]int64{attrPlayed: 1, attrLosses: 1, attrForfeits: 1},
		},
		{
			name:   "Timeout",
			result: entity.Result{GameID: "g1", Reason: entity.EndTimeout, Players: players()},
			p1:     map[string]int64{attrPlayed: 1, attrAbandoned: 1},
			p2:     map[string]int64{attrPlayed: 1, attrAbandoned: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: repositories expecting one increment per participant
			statsService, attributes, results := newStatsFixture()
			attributes.On("Incr", mock.Anything, "p1", tt.p1).Return(nil).Once()
			attributes.On("Incr", mock.Anything, "p2", tt.p2).Return(nil).Once()
			results.On("SaveResult", mock.Anything, mock.AnythingOfType("*entity.Result")).Return(nil).Once()

			// When: the match finishes
			statsService.MatchFinished(ctx, tt.result)

			// Then: both records and the result are written
			attributes.AssertExpectations(t)
			results.AssertExpectations(t)
		})
	}

	t.Run("Storage failures are swallowed", func(t *testing.T) {
		statsService, attributes, results := newStatsFixture()
		attributes.On("Incr", mock.Anything, mock.Anything, mock.Anything).Return(errRedisDown).Twice()
		results.On("SaveResult", mock.Anything, mock.Anything).Return(errRedisDown).Once()

		assert.NotPanics(t, func() {
			statsService.MatchFinished(ctx, entity.Result{GameID: "g1", Reason: entity.EndComplete, Players: players(), Tie: true})
		})
		attributes.AssertExpectations(t)
	})
}

func TestStatsService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("Parses counters", func(t *testing.T) {
		statsService, attributes, _ := newStatsFixture()
		attributes.On("GetAll", mock.Anything, "p1").
			Return(map[string]string{attrPlayed: "3", attrWins: "2", attrTies: "1", "title": "SeeD"}, nil).Once()

		stats, err := statsService.Stats(ctx, "p1")

		require.NoError(t, err)
		assert.Equal(t, &entity.Stats{Played: 3, Wins: 2, Ties: 1}, stats)
	})

	t.Run("Storage failure", func(t *testing.T) {
		statsService, attributes, _ := newStatsFixture()
		attributes.On("GetAll", mock.Anything, "p1").Return(nil, errRedisDown).Once()

		_, err := statsService.Stats(ctx, "p1")

		require.ErrorIs(t, err, errRedisDown)
	})
}
