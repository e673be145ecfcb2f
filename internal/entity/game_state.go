package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
)

// GameState is the per-game-type state blob of a session.
type GameState interface {
	GameType() GameType
	// Implemented reports whether moves are processed for this game type.
	// Stub game types keep their state untouched by moves.
	Implemented() bool
}

const (
	HeartMark = "❤️"
	BlueMark  = "💙"
	EmptyMark = ""
)

// Marks is indexed by seat: the creator plays HeartMark.
var Marks = [2]string{HeartMark, BlueMark}

type TicTacHeartsMove struct {
	PlayerID string `json:"player_id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Mark     string `json:"mark"`
}

type TicTacHeartsState struct {
	Board         [3][3]string       `json:"board"`
	CurrentPlayer int                `json:"current_player"`
	Moves         []TicTacHeartsMove `json:"moves"`
}

func (that *TicTacHeartsState) GameType() GameType { return TicTacHearts }
func (that *TicTacHeartsState) Implemented() bool  { return true }

// Clone returns a deep copy; the board is an array so only the move log needs copying.
func (that *TicTacHeartsState) Clone() *TicTacHeartsState {
	clone := *that
	clone.Moves = append(make([]TicTacHeartsMove, 0, len(that.Moves)+1), that.Moves...)

	return &clone
}

type TriviaQuestion struct {
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Points   int      `json:"points"`
}

type LoveTriviaState struct {
	CurrentQuestion int              `json:"current_question"`
	Scores          map[string]int   `json:"scores"`
	Questions       []TriviaQuestion `json:"questions"`
	Answers         []map[string]any `json:"answers"`
}

func (that *LoveTriviaState) GameType() GameType { return LoveTrivia }
func (that *LoveTriviaState) Implemented() bool  { return false }

type MemoryMatchState struct {
	Cards         []string       `json:"cards"`
	Flipped       []int          `json:"flipped"`
	Matched       []int          `json:"matched"`
	CurrentPlayer int            `json:"current_player"`
	Scores        map[string]int `json:"scores"`
}

func (that *MemoryMatchState) GameType() GameType { return MemoryMatch }
func (that *MemoryMatchState) Implemented() bool  { return false }

type WordLoveState struct {
	TargetWord   string   `json:"target_word"`
	Guesses      []string `json:"guesses"`
	CurrentGuess string   `json:"current_guess"`
	Attempts     int      `json:"attempts"`
	MaxAttempts  int      `json:"max_attempts"`
}

func (that *WordLoveState) GameType() GameType { return WordLove }
func (that *WordLoveState) Implemented() bool  { return false }

type QuestChallenge struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

type DistanceQuestState struct {
	Level           int              `json:"level"`
	PlayerPositions map[string]any   `json:"player_positions"`
	ItemsCollected  map[string]any   `json:"items_collected"`
	Challenges      []QuestChallenge `json:"challenges"`
}

func (that *DistanceQuestState) GameType() GameType { return DistanceQuest }
func (that *DistanceQuestState) Implemented() bool  { return false }

type PuzzlePiece struct {
	ID       int `json:"id"`
	X        int `json:"x"`
	Y        int `json:"y"`
	CorrectX int `json:"correct_x"`
	CorrectY int `json:"correct_y"`
}

type LovePuzzlesState struct {
	PuzzlePieces []PuzzlePiece  `json:"puzzle_pieces"`
	PlacedPieces map[string]any `json:"placed_pieces"`
	Completed    bool           `json:"completed"`
}

func (that *LovePuzzlesState) GameType() GameType { return LovePuzzles }
func (that *LovePuzzlesState) Implemented() bool  { return false }

// NewStateFor returns an empty state value of the variant used by gameType.
func NewStateFor(gameType GameType) (GameState, error) {
	switch gameType {
	case TicTacHearts:
		return &TicTacHeartsState{}, nil
	case LoveTrivia:
		return &LoveTriviaState{}, nil
	case MemoryMatch:
		return &MemoryMatchState{}, nil
	case WordLove:
		return &WordLoveState{}, nil
	case DistanceQuest:
		return &DistanceQuestState{}, nil
	case LovePuzzles:
		return &LovePuzzlesState{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGameType, gameType)
	}
}

// DecodeState decodes a raw state blob into the variant of gameType.
func DecodeState(gameType GameType, raw json.RawMessage) (GameState, error) {
	state, err := NewStateFor(gameType)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 || string(raw) == "null" {
		return state, nil
	}

	if err = json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s state: %w", gameType, err)
	}

	return state, nil
}
