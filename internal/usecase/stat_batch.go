package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/peaks-baseball/internal/domain/playerstats"
	"github.com/riskibarqy/peaks-baseball/internal/domain/statline"
)

const (
	BatchLineCreated = "created"
	BatchLineFailed  = "failed"
)

type BatchLineInput struct {
	PlayerID int64
	Line     statline.Optional
}

type BatchLineResult struct {
	PlayerID int64
	Status   string
	Message  string
	Entry    *StatEntry
}

type BatchResult struct {
	GameID       int64
	Lines        []BatchLineResult
	SuccessCount int
	FailedCount  int
}

// BatchCreate records one line per player for a game. Lines are saved
// independently so one failure does not roll back the others; results
// keep the input order.
func (s *StatService) BatchCreate(ctx context.Context, gameID int64, lines []BatchLineInput) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.BatchCreate")
	defer span.End()

	if len(lines) == 0 {
		return BatchResult{}, fmt.Errorf("%w: at least one stat line is required", ErrInvalidInput)
	}
	if len(lines) > maxBatchLinesPerGame {
		return BatchResult{}, fmt.Errorf("%w: at most %d stat lines per batch", ErrInvalidInput, maxBatchLinesPerGame)
	}
	if _, err := s.mustGetGame(ctx, gameID); err != nil {
		return BatchResult{}, err
	}

	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.PlayerID]; ok {
			return BatchResult{}, fmt.Errorf("%w: player=%d appears more than once", ErrInvalidInput, line.PlayerID)
		}
		seen[line.PlayerID] = struct{}{}
	}

	workers := s.workers
	if workers > len(lines) {
		workers = len(lines)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create batch worker pool: %w", err)
	}
	defer pool.Release()

	type indexedResult struct {
		index  int
		result BatchLineResult
	}

	results := make(chan indexedResult, len(lines))
	var wg sync.WaitGroup
	for i, line := range lines {
		i, line := i, line
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results <- indexedResult{index: i, result: s.createBatchLine(ctx, gameID, line)}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return BatchResult{}, fmt.Errorf("submit batch line player=%d: %w", line.PlayerID, err)
		}
	}
	wg.Wait()
	close(results)

	collected := make([]indexedResult, 0, len(lines))
	for item := range results {
		collected = append(collected, item)
	}
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	out := BatchResult{GameID: gameID, Lines: make([]BatchLineResult, 0, len(collected))}
	for _, item := range collected {
		out.Lines = append(out.Lines, item.result)
		if item.result.Status == BatchLineCreated {
			out.SuccessCount++
		} else {
			out.FailedCount++
		}
	}

	s.logger.InfoContext(ctx, "stat batch processed",
		"game_id", gameID,
		"success", out.SuccessCount,
		"failed", out.FailedCount,
	)
	return out, nil
}

func (s *StatService) createBatchLine(ctx context.Context, gameID int64, line BatchLineInput) BatchLineResult {
	entry, err := s.save(ctx, playerstats.Stat{
		PlayerID: line.PlayerID,
		GameID:   gameID,
		Line:     line.Line.Normalize(),
	}, true)
	if err != nil {
		s.logger.WarnContext(ctx, "stat batch line failed", "game_id", gameID, "player_id", line.PlayerID, "error", err)
		return BatchLineResult{PlayerID: line.PlayerID, Status: BatchLineFailed, Message: batchFailureMessage(err)}
	}
	return BatchLineResult{PlayerID: line.PlayerID, Status: BatchLineCreated, Entry: &entry}
}

// batchFailureMessage is returned to the client per line; storage errors
// only reach the log.
func batchFailureMessage(err error) string {
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return err.Error()
	}
	return "internal error"
}
