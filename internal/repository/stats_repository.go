package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// 每日统计键：分布为 hash，总数为独立计数器
func statsDistributionKey(date string) string {
	return fmt.Sprintf("stats:%s:distribution", date)
}

func statsTotalKey(date string) string {
	return fmt.Sprintf("stats:%s:total", date)
}

type StatsRepository struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewStatsRepository(rdb *redis.Client, ttl time.Duration) *StatsRepository {
	return &StatsRepository{Redis: rdb, TTL: ttl}
}

// Increment 两个计数都用原子自增，放在同一个 MULTI 中提交
func (r *StatsRepository) Increment(ctx context.Context, date string, attempts int) error {
	distKey := statsDistributionKey(date)
	totalKey := statsTotalKey(date)

	_, err := r.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, distKey, strconv.Itoa(attempts), 1)
		pipe.Incr(ctx, totalKey)
		if r.TTL > 0 {
			pipe.Expire(ctx, distKey, r.TTL)
			pipe.Expire(ctx, totalKey, r.TTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to increment stats for %s: %w", date, err)
	}
	return nil
}

// Get 没有数据时返回空分布和 0
func (r *StatsRepository) Get(ctx context.Context, date string) (map[int]int64, int64, error) {
	pipe := r.Redis.Pipeline()
	distCmd := pipe.HGetAll(ctx, statsDistributionKey(date))
	totalCmd := pipe.Get(ctx, statsTotalKey(date))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, 0, fmt.Errorf("failed to read stats for %s: %w", date, err)
	}

	distribution := make(map[int]int64)
	for field, value := range distCmd.Val() {
		attempts, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		count, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		distribution[attempts] = count
	}

	total, err := totalCmd.Int64()
	if err != nil && err != redis.Nil {
		return nil, 0, fmt.Errorf("failed to parse stats total for %s: %w", date, err)
	}
	return distribution, total, nil
}

// Totals 批量读取多天的完成总数
func (r *StatsRepository) Totals(ctx context.Context, dates []string) (map[string]int64, error) {
	totals := make(map[string]int64, len(dates))
	if len(dates) == 0 {
		return totals, nil
	}

	pipe := r.Redis.Pipeline()
	cmds := make(map[string]*redis.StringCmd, len(dates))
	for _, date := range dates {
		cmds[date] = pipe.Get(ctx, statsTotalKey(date))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read stats totals: %w", err)
	}

	for date, cmd := range cmds {
		n, err := cmd.Int64()
		if err != nil {
			totals[date] = 0
			continue
		}
		totals[date] = n
	}
	return totals, nil
}
