package service

import (
	"context"
	"fusion_backend/internal/model"
	"fusion_backend/internal/repository"
	"fusion_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guessFixture struct {
	puzzles *repository.PuzzleRepository
	stats   *StatsService
	guess   *GuessService
}

func newGuessFixture(t *testing.T) *guessFixture {
	t.Helper()
	_, rdb := setupRedis(t)
	puzzles := repository.NewPuzzleRepository(rdb)
	stats := NewStatsService(repository.NewStatsRepository(rdb, 0), puzzles)
	return &guessFixture{puzzles: puzzles, stats: stats, guess: NewGuessService(puzzles, stats)}
}

func TestEvaluateChampionGuess_Normalization(t *testing.T) {
	puzzle := testPuzzle()
	for _, guess := range []string{"  Ahri ", "AHRI", "ahri"} {
		result := EvaluateChampionGuess(puzzle, guess, nil)
		assert.True(t, result.Correct, guess)
		require.NotNil(t, result.Slot)
		assert.Equal(t, model.SlotA, *result.Slot)
	}
}

func TestEvaluateChampionGuess_Transitions(t *testing.T) {
	puzzle := testPuzzle()

	result := EvaluateChampionGuess(puzzle, "yone", nil)
	assert.True(t, result.Correct)
	assert.Equal(t, model.SlotB, *result.Slot)
	assert.Equal(t, model.PhaseSeekingPair, *result.Phase)

	result = EvaluateChampionGuess(puzzle, "ahri", []model.Slot{model.SlotB})
	assert.True(t, result.Correct)
	assert.Equal(t, model.SlotA, *result.Slot)
	assert.Equal(t, model.PhaseSeekingTheme, *result.Phase)

	result = EvaluateChampionGuess(puzzle, "yone", []model.Slot{model.SlotB})
	assert.False(t, result.Correct)
	assert.True(t, result.AlreadyFound)
	assert.False(t, result.Penalized)

	result = EvaluateChampionGuess(puzzle, "jinx", nil)
	assert.False(t, result.Correct)
	assert.True(t, result.Penalized)
	assert.Equal(t, "Incorrect!", result.Message)
}

func TestEvaluateThemeGuess(t *testing.T) {
	puzzle := testPuzzle()

	result := EvaluateThemeGuess(puzzle, " ARCANE")
	assert.True(t, result.Correct)
	assert.Equal(t, model.PhaseWon, *result.Phase)

	result = EvaluateThemeGuess(puzzle, "Star Guardian")
	assert.False(t, result.Correct)
	assert.False(t, result.Penalized)
	assert.Equal(t, "Wrong theme!", result.Message)
	assert.Equal(t, model.PhaseSeekingTheme, *result.Phase)
}

func TestSubmit_FullGame(t *testing.T) {
	f := newGuessFixture(t)
	ctx := context.Background()
	storeCurrent(t, f.puzzles, testPuzzle())

	session := model.NewGuessSession("2024-01-01")

	result, session := f.guess.Submit(ctx, session, "yone")
	assert.True(t, result.Correct)
	assert.Equal(t, model.SlotB, *result.Slot)
	assert.Equal(t, model.PhaseSeekingPair, session.Phase)

	// 已找到的角色再次猜测：拒绝，不进入错误列表，但计入尝试次数
	result, session = f.guess.Submit(ctx, session, "Yone")
	assert.True(t, result.AlreadyFound)
	assert.Empty(t, session.WrongGuesses)
	assert.Equal(t, 2, session.Attempts)

	result, session = f.guess.Submit(ctx, session, "jinx")
	assert.False(t, result.Correct)
	assert.True(t, result.Penalized)
	assert.Equal(t, []string{"jinx"}, session.WrongGuesses)

	result, session = f.guess.Submit(ctx, session, "ahri")
	assert.True(t, result.Correct)
	assert.Equal(t, model.PhaseSeekingTheme, session.Phase)

	result, session = f.guess.Submit(ctx, session, "pulsefire")
	assert.False(t, result.Correct)
	assert.Equal(t, model.PhaseSeekingTheme, session.Phase)

	result, session = f.guess.Submit(ctx, session, "arcane")
	assert.True(t, result.Correct)
	assert.Equal(t, model.PhaseWon, session.Phase)
	assert.Equal(t, 6, session.Attempts)
	assert.False(t, session.GivenUp)

	stats, err := f.stats.Read(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Distribution[6])

	// 已结束的会话不再接受猜测
	result, next := f.guess.Submit(ctx, session, "ahri")
	assert.False(t, result.Correct)
	assert.Equal(t, session, next)
}

func TestSubmit_DuplicateDoesNotCount(t *testing.T) {
	f := newGuessFixture(t)
	ctx := context.Background()
	storeCurrent(t, f.puzzles, testPuzzle())

	session := model.NewGuessSession("2024-01-01")
	_, session = f.guess.Submit(ctx, session, "Jinx")
	require.Equal(t, 1, session.Attempts)

	result, next := f.guess.Submit(ctx, session, "  JINX ")
	assert.True(t, result.Duplicate)
	assert.Equal(t, 1, next.Attempts)
	assert.Equal(t, []string{"jinx"}, next.WrongGuesses)
}

func TestSubmit_ThemeNameGuessedEarlyStillWins(t *testing.T) {
	f := newGuessFixture(t)
	ctx := context.Background()
	storeCurrent(t, f.puzzles, testPuzzle())

	session := model.NewGuessSession("2024-01-01")
	// 角色阶段误把主题当作角色名
	result, session := f.guess.Submit(ctx, session, "arcane")
	assert.True(t, result.Penalized)

	_, session = f.guess.Submit(ctx, session, "ahri")
	_, session = f.guess.Submit(ctx, session, "yone")
	require.Equal(t, model.PhaseSeekingTheme, session.Phase)
	assert.Equal(t, 1, session.ThemeStart)

	result, session = f.guess.Submit(ctx, session, "Arcane")
	assert.False(t, result.Duplicate)
	assert.True(t, result.Correct)
	assert.Equal(t, model.PhaseWon, session.Phase)
	assert.Equal(t, 4, session.Attempts)

	stats, err := f.stats.Read(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Distribution[4])
}

func TestSubmit_ThemePhaseDuplicate(t *testing.T) {
	f := newGuessFixture(t)
	ctx := context.Background()
	storeCurrent(t, f.puzzles, testPuzzle())

	session := model.NewGuessSession("2024-01-01")
	_, session = f.guess.Submit(ctx, session, "ahri")
	_, session = f.guess.Submit(ctx, session, "yone")
	_, session = f.guess.Submit(ctx, session, "pulsefire")
	require.Equal(t, 3, session.Attempts)

	result, next := f.guess.Submit(ctx, session, "PULSEFIRE")
	assert.True(t, result.Duplicate)
	assert.Equal(t, model.PhaseSeekingTheme, *result.Phase)
	assert.Equal(t, 3, next.Attempts)
}

func TestSubmit_StaleWrongGuessIsNotDuplicate(t *testing.T) {
	f := newGuessFixture(t)
	storeCurrent(t, f.puzzles, testPuzzle())

	stale := model.NewGuessSession("2023-12-31")
	stale.WrongGuesses = []string{"jinx"}
	stale.Attempts = 1

	result, next := f.guess.Submit(context.Background(), stale, "jinx")
	assert.False(t, result.Duplicate)
	assert.True(t, result.Penalized)
	assert.Equal(t, "2024-01-01", next.Date)
	assert.Equal(t, []string{"jinx"}, next.WrongGuesses)
	assert.Equal(t, 1, next.Attempts)
}

func TestSubmit_DoesNotMutateInput(t *testing.T) {
	f := newGuessFixture(t)
	storeCurrent(t, f.puzzles, testPuzzle())

	session := model.NewGuessSession("2024-01-01")
	_, next := f.guess.Submit(context.Background(), session, "ahri")

	assert.Empty(t, session.FoundSlots)
	assert.Equal(t, 0, session.Attempts)
	assert.Equal(t, []model.Slot{model.SlotA}, next.FoundSlots)
}

func TestSubmit_StaleSessionResets(t *testing.T) {
	f := newGuessFixture(t)
	storeCurrent(t, f.puzzles, testPuzzle())

	stale := model.NewGuessSession("2023-12-31")
	stale.Phase = model.PhaseWon
	stale.Attempts = 9

	result, next := f.guess.Submit(context.Background(), stale, "ahri")
	assert.True(t, result.Correct)
	assert.Equal(t, "2024-01-01", next.Date)
	assert.Equal(t, 1, next.Attempts)
}

func TestSubmit_NoPuzzleIsUnavailable(t *testing.T) {
	f := newGuessFixture(t)

	result, next := f.guess.Submit(context.Background(), model.NewGuessSession("2024-01-01"), "ahri")
	assert.True(t, result.Unavailable)
	assert.Equal(t, "No active puzzle", result.Message)
	assert.Equal(t, 0, next.Attempts)

	assert.True(t, f.guess.SubmitChampionGuess(context.Background(), "ahri", nil).Unavailable)
	assert.True(t, f.guess.SubmitThemeGuess(context.Background(), "arcane", 3).Unavailable)
}

func TestSubmit_EmptyGuess(t *testing.T) {
	f := newGuessFixture(t)
	storeCurrent(t, f.puzzles, testPuzzle())

	result, next := f.guess.Submit(context.Background(), model.NewGuessSession("2024-01-01"), "   ")
	assert.False(t, result.Correct)
	assert.Equal(t, 0, next.Attempts)
}

func TestSubmitThemeGuess_RecordsStats(t *testing.T) {
	f := newGuessFixture(t)
	ctx := context.Background()
	storeCurrent(t, f.puzzles, testPuzzle())

	assert.False(t, f.guess.SubmitThemeGuess(ctx, "cosmic", 4).Correct)
	assert.True(t, f.guess.SubmitThemeGuess(ctx, "Arcane", 4).Correct)
	// attempts 为 0 时只判定不计数
	assert.True(t, f.guess.SubmitThemeGuess(ctx, "Arcane", 0).Correct)

	stats, err := f.stats.Read(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Distribution[4])
}

func TestGiveUp_DoesNotRecordStats(t *testing.T) {
	f := newGuessFixture(t)
	ctx := context.Background()
	storeCurrent(t, f.puzzles, testPuzzle())

	session := model.NewGuessSession("2024-01-01")
	_, session = f.guess.Submit(ctx, session, "ahri")

	solution, next, err := f.guess.GiveUp(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, &model.Solution{EntityA: "Ahri", EntityB: "Yone", Theme: "Arcane"}, solution)
	assert.Equal(t, model.PhaseWon, next.Phase)
	assert.True(t, next.GivenUp)
	assert.Equal(t, 1, next.Attempts)

	stats, err := f.stats.Read(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
	assert.Empty(t, stats.Distribution)

	// 已结束的会话再次放弃，状态不变
	_, again, err := f.guess.GiveUp(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, next, again)
}

func TestGiveUp_NoPuzzle(t *testing.T) {
	f := newGuessFixture(t)

	_, _, err := f.guess.GiveUp(context.Background(), model.NewGuessSession("2024-01-01"))
	assert.ErrorIs(t, err, util.ErrNoActivePuzzle)

	_, err = f.guess.Solution(context.Background())
	assert.ErrorIs(t, err, util.ErrNoActivePuzzle)
}
