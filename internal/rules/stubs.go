package rules

import (
	"math/rand"

	"github.com/rocketscienceinc/celebration-backend/internal/entity"
)

const puzzlePieceCount = 16

var (
	memorySymbols = []string{"❤️", "💙", "💚", "💛", "💜", "🧡", "🤍", "🖤"}
	loveWords     = []string{"HEART", "SWEET", "HONEY", "ANGEL", "DARLING", "BELOVED"}
)

func newLoveTriviaState() *entity.LoveTriviaState {
	return &entity.LoveTriviaState{
		CurrentQuestion: 0,
		Scores:          map[string]int{},
		Questions: []entity.TriviaQuestion{
			{Question: "What's your favorite memory together?", Type: "open", Points: 10},
			{Question: "When did we first meet?", Type: "date", Points: 15},
			{
				Question: "What's my favorite color?",
				Type:     "multiple_choice",
				Options:  []string{"Red", "Blue", "Green", "Purple"},
				Points:   5,
			},
		},
		Answers: []map[string]any{},
	}
}

func newMemoryMatchState() *entity.MemoryMatchState {
	cards := make([]string, 0, len(memorySymbols)*2)
	cards = append(cards, memorySymbols...)
	cards = append(cards, memorySymbols...)

	rand.Shuffle(len(cards), func(i, j int) { //nolint: gosec // game randomness, not security
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &entity.MemoryMatchState{
		Cards:   cards,
		Flipped: []int{},
		Matched: []int{},
		Scores:  map[string]int{},
	}
}

func newWordLoveState() *entity.WordLoveState {
	return &entity.WordLoveState{
		TargetWord:  loveWords[rand.Intn(len(loveWords))], //nolint: gosec // it's ok
		Guesses:     []string{},
		MaxAttempts: 6,
	}
}

func newDistanceQuestState() *entity.DistanceQuestState {
	return &entity.DistanceQuestState{
		Level:           1,
		PlayerPositions: map[string]any{},
		ItemsCollected:  map[string]any{},
		Challenges: []entity.QuestChallenge{
			{ID: 1, Type: "riddle", Content: "I am always with you, even when apart. What am I?"},
			{ID: 2, Type: "task", Content: "Send a virtual hug to your partner"},
			{ID: 3, Type: "memory", Content: "Share your favorite moment together"},
		},
	}
}

func newLovePuzzlesState() *entity.LovePuzzlesState {
	pieces := make([]entity.PuzzlePiece, 0, puzzlePieceCount)
	for i := 0; i < puzzlePieceCount; i++ {
		pieces = append(pieces, entity.PuzzlePiece{ID: i, CorrectX: i % 4, CorrectY: i / 4})
	}

	return &entity.LovePuzzlesState{
		PuzzlePieces: pieces,
		PlacedPieces: map[string]any{},
	}
}
