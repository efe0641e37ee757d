package model

import "strconv"

// 展示分桶：3..12 各一个，13 及以上合并
const (
	BucketMin      = MinAttempts
	BucketMax      = 12
	OverflowBucket = "13+"
)

// swagger:model AttemptStats
type AttemptStats struct {
	Date         string        `json:"date"`
	Distribution map[int]int64 `json:"distribution"`
	Total        int64         `json:"total"`
}

func NewAttemptStats(date string) *AttemptStats {
	return &AttemptStats{Date: date, Distribution: map[int]int64{}}
}

// swagger:model StatsBucket
type StatsBucket struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Buckets 按展示策略聚合。低于 3 的次数理论上不存在，计入第一个桶
func (s *AttemptStats) Buckets() []StatsBucket {
	buckets := make([]StatsBucket, 0, BucketMax-BucketMin+2)
	for n := BucketMin; n <= BucketMax; n++ {
		buckets = append(buckets, StatsBucket{Label: strconv.Itoa(n)})
	}
	overflow := StatsBucket{Label: OverflowBucket}

	for attempts, count := range s.Distribution {
		switch {
		case attempts > BucketMax:
			overflow.Count += count
		case attempts < BucketMin:
			buckets[0].Count += count
		default:
			buckets[attempts-BucketMin].Count += count
		}
	}
	return append(buckets, overflow)
}
