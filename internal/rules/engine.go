// Package rules holds the pure game rule engine: initial states, participant
// minimums and move transitions per game type. Nothing here performs I/O.
package rules

import (
	"fmt"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
	"github.com/rocketscienceinc/celebration-backend/internal/entity"
)

const defaultMinimumParticipants = 2

var minimumParticipants = map[entity.GameType]int{
	entity.TicTacHearts:  2,
	entity.LoveTrivia:    2,
	entity.MemoryMatch:   2,
	entity.WordLove:      2,
	entity.DistanceQuest: 2,
	entity.LovePuzzles:   2,
}

// Outcome is the result of applying a move.
type Outcome struct {
	State  entity.GameState
	Status string
	// Winner is a participant id, entity.WinnerDraw, or empty.
	Winner string
}

// InitialState returns the starting state for gameType. Memory match and word
// love draw fresh randomness on every call.
func InitialState(gameType entity.GameType) (entity.GameState, error) {
	switch gameType {
	case entity.TicTacHearts:
		return newTicTacHeartsState(), nil
	case entity.LoveTrivia:
		return newLoveTriviaState(), nil
	case entity.MemoryMatch:
		return newMemoryMatchState(), nil
	case entity.WordLove:
		return newWordLoveState(), nil
	case entity.DistanceQuest:
		return newDistanceQuestState(), nil
	case entity.LovePuzzles:
		return newLovePuzzlesState(), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGameType, gameType)
	}
}

// MinimumParticipants returns the player count needed to leave the waiting status.
func MinimumParticipants(gameType entity.GameType) int {
	if minimum, ok := minimumParticipants[gameType]; ok {
		return minimum
	}

	return defaultMinimumParticipants
}

// StatusFor returns the status of a not yet completed session with playerCount participants.
func StatusFor(gameType entity.GameType, playerCount int) string {
	if playerCount >= MinimumParticipants(gameType) {
		return entity.StatusActive
	}

	return entity.StatusWaiting
}

// ApplyMove computes the transition for a move made by the participant sitting at seat.
// Illegal moves are no-ops: the input state is returned unmodified with status active.
func ApplyMove(gameType entity.GameType, state entity.GameState, move entity.Move, seat int) Outcome {
	noop := Outcome{State: state, Status: entity.StatusActive}

	if state == nil || state.GameType() != gameType {
		return noop
	}

	switch current := state.(type) {
	case *entity.TicTacHeartsState:
		return applyTicTacHeartsMove(current, move, seat)
	default:
		// stub game types: moves are accepted but not processed yet
		return noop
	}
}
