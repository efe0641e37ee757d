package service

import (
	"context"
	"fmt"
	"fusion_backend/internal/model"
	"fusion_backend/internal/repository"
	"fusion_backend/internal/util"
	"fusion_backend/pkg/logger"
	"fusion_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

const (
	msgNoActivePuzzle = "No active puzzle"
	msgAlreadyFound   = "Already found!"
	msgAlreadyGuessed = "Already guessed!"
	msgIncorrect      = "Incorrect!"
	msgWrongTheme     = "Wrong theme!"
	msgWon            = "YOU WON! Fusion Completed."
	msgFinished       = "Game already finished"
	msgEmptyGuess     = "Guess must not be empty"
)

func phasePtr(p model.Phase) *model.Phase {
	return &p
}

func slotPtr(s model.Slot) *model.Slot {
	return &s
}

func containsSlot(slots []model.Slot, slot model.Slot) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

// EvaluateChampionGuess 角色阶段判定。返回的 Phase 为权威状态，调用方不要自行推导
func EvaluateChampionGuess(puzzle *model.Puzzle, guess string, foundSlots []model.Slot) model.GuessResult {
	normalized := model.NormalizeGuess(guess)
	answers := []struct {
		slot model.Slot
		name string
	}{
		{model.SlotA, puzzle.EntityA},
		{model.SlotB, puzzle.EntityB},
	}

	for _, answer := range answers {
		if containsSlot(foundSlots, answer.slot) && normalized == model.NormalizeGuess(answer.name) {
			return model.GuessResult{Message: msgAlreadyFound, AlreadyFound: true, Phase: phasePtr(model.PhaseSeekingPair)}
		}
	}

	for _, answer := range answers {
		if containsSlot(foundSlots, answer.slot) || normalized != model.NormalizeGuess(answer.name) {
			continue
		}
		phase := model.PhaseSeekingPair
		if containsSlot(foundSlots, otherSlot(answer.slot)) {
			phase = model.PhaseSeekingTheme
		}
		return model.GuessResult{
			Correct: true,
			Slot:    slotPtr(answer.slot),
			Message: fmt.Sprintf("Correct! It contains %s!", answer.name),
			Phase:   phasePtr(phase),
		}
	}

	return model.GuessResult{Message: msgIncorrect, Phase: phasePtr(model.PhaseSeekingPair), Penalized: true}
}

func otherSlot(slot model.Slot) model.Slot {
	if slot == model.SlotA {
		return model.SlotB
	}
	return model.SlotA
}

// EvaluateThemeGuess 主题阶段判定，猜错没有缩放惩罚
func EvaluateThemeGuess(puzzle *model.Puzzle, guess string) model.GuessResult {
	if model.NormalizeGuess(guess) == model.NormalizeGuess(puzzle.Theme) {
		return model.GuessResult{Correct: true, Message: msgWon, Phase: phasePtr(model.PhaseWon)}
	}
	return model.GuessResult{Message: msgWrongTheme, Phase: phasePtr(model.PhaseSeekingTheme)}
}

func unavailable() model.GuessResult {
	return model.GuessResult{Message: msgNoActivePuzzle, Unavailable: true}
}

// GuessService 无状态，每次调用都重新读取当前谜题
type GuessService struct {
	puzzles *repository.PuzzleRepository
	stats   *StatsService
}

func NewGuessService(puzzles *repository.PuzzleRepository, stats *StatsService) *GuessService {
	return &GuessService{puzzles: puzzles, stats: stats}
}

// currentPuzzle 读取失败按“没有谜题”处理
func (s *GuessService) currentPuzzle(ctx context.Context) *model.Puzzle {
	puzzle, err := s.puzzles.GetCurrent(ctx)
	if err != nil {
		logger.Log.Error("Failed to load current puzzle", zap.Error(err))
		return nil
	}
	return puzzle
}

func (s *GuessService) SubmitChampionGuess(ctx context.Context, guess string, foundSlots []model.Slot) model.GuessResult {
	puzzle := s.currentPuzzle(ctx)
	if puzzle == nil {
		return unavailable()
	}
	result := EvaluateChampionGuess(puzzle, guess, foundSlots)
	countGuess(model.PhaseSeekingPair, result)
	return result
}

// SubmitThemeGuess attempts 为客户端会话中的最终尝试次数，猜中时计入统计
func (s *GuessService) SubmitThemeGuess(ctx context.Context, guess string, attempts int) model.GuessResult {
	puzzle := s.currentPuzzle(ctx)
	if puzzle == nil {
		return unavailable()
	}
	result := EvaluateThemeGuess(puzzle, guess)
	countGuess(model.PhaseSeekingTheme, result)
	if result.Correct {
		s.recordWin(ctx, puzzle.Date, attempts)
	}
	return result
}

// Submit 完整状态机：输入客户端持有的会话，返回判定结果和新会话
func (s *GuessService) Submit(ctx context.Context, session model.GuessSession, guess string) (model.GuessResult, model.GuessSession) {
	next := session.Clone()

	normalized := model.NormalizeGuess(guess)
	if normalized == "" {
		return model.GuessResult{Message: msgEmptyGuess, Phase: phasePtr(next.Phase)}, next
	}
	// 当天会话的重复错误猜测直接拒绝，不读谜题也不计次数
	if next.Date == util.PuzzleDate(time.Now()) && isDuplicate(next, normalized) {
		return duplicate(next), next
	}

	puzzle := s.currentPuzzle(ctx)
	if puzzle == nil {
		return unavailable(), next
	}
	// 前一天的会话作废，从新谜题重新开始
	if next.Date != puzzle.Date {
		next = model.NewGuessSession(puzzle.Date)
	}
	if next.Phase == model.PhaseWon {
		return model.GuessResult{Message: msgFinished, Phase: phasePtr(model.PhaseWon)}, next
	}
	if isDuplicate(next, normalized) {
		return duplicate(next), next
	}

	next.Attempts++

	var result model.GuessResult
	switch next.Phase {
	case model.PhaseSeekingTheme:
		result = EvaluateThemeGuess(puzzle, normalized)
		if result.Correct {
			s.recordWin(ctx, puzzle.Date, next.Attempts)
		} else {
			next.WrongGuesses = append(next.WrongGuesses, normalized)
		}
		next.Phase = *result.Phase
		countGuess(model.PhaseSeekingTheme, result)
	default:
		result = EvaluateChampionGuess(puzzle, normalized, next.FoundSlots)
		switch {
		case result.Correct:
			next.FoundSlots = append(next.FoundSlots, *result.Slot)
			if *result.Phase == model.PhaseSeekingTheme {
				next.ThemeStart = len(next.WrongGuesses)
			}
		case !result.AlreadyFound:
			next.WrongGuesses = append(next.WrongGuesses, normalized)
		}
		next.Phase = *result.Phase
		countGuess(model.PhaseSeekingPair, result)
	}

	return result, next
}

func isDuplicate(session model.GuessSession, normalized string) bool {
	return session.Phase != model.PhaseWon && session.HasWrongGuess(normalized)
}

func duplicate(session model.GuessSession) model.GuessResult {
	return model.GuessResult{Message: msgAlreadyGuessed, Duplicate: true, Phase: phasePtr(session.Phase)}
}

// GiveUp 公布答案并结束会话，不计入统计
func (s *GuessService) GiveUp(ctx context.Context, session model.GuessSession) (*model.Solution, model.GuessSession, error) {
	next := session.Clone()
	puzzle := s.currentPuzzle(ctx)
	if puzzle == nil {
		return nil, next, util.ErrNoActivePuzzle
	}
	solution := puzzle.Solution()
	// 已结束的会话只展示答案，不改变状态
	if next.Phase == model.PhaseWon && next.Date == puzzle.Date {
		return &solution, next, nil
	}
	if next.Date != puzzle.Date {
		next = model.NewGuessSession(puzzle.Date)
	}

	next.Phase = model.PhaseWon
	next.GivenUp = true
	monitoring.GuessCounter.WithLabelValues(string(model.PhaseWon), "given_up").Inc()
	return &solution, next, nil
}

func (s *GuessService) Solution(ctx context.Context) (*model.Solution, error) {
	puzzle := s.currentPuzzle(ctx)
	if puzzle == nil {
		return nil, util.ErrNoActivePuzzle
	}
	solution := puzzle.Solution()
	return &solution, nil
}

func (s *GuessService) recordWin(ctx context.Context, date string, attempts int) {
	if err := s.stats.Record(ctx, date, attempts); err != nil {
		logger.Log.Warn("Failed to record completion",
			zap.String("date", date),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
	}
}

func countGuess(phase model.Phase, result model.GuessResult) {
	outcome := "wrong"
	switch {
	case result.Correct:
		outcome = "correct"
	case result.AlreadyFound:
		outcome = "already_found"
	}
	monitoring.GuessCounter.WithLabelValues(string(phase), outcome).Inc()
}
