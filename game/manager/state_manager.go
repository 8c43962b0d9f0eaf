package manager

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"neural-snake/game/event"
	"neural-snake/game/types"
)

// MaxHistory caps the number of finished games kept in memory
const MaxHistory = 200

// GameRecord describes one finished game
type GameRecord struct {
	ID         string
	StartTime  time.Time
	EndTime    time.Time
	Score      int
	BodyLength int
	Cause      types.CollisionType
}

func (r GameRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// StateManager keeps session statistics for the lifetime of the process.
// Nothing is written to disk.
type StateManager struct {
	mu           sync.RWMutex
	now          func() time.Time
	highScore    int
	gamesPlayed  int
	scoreHistory []GameRecord
	startTime    time.Time
	inGame       bool
}

func NewStateManager() *StateManager {
	return &StateManager{
		now:          time.Now,
		scoreHistory: make([]GameRecord, 0),
	}
}

// Observe records game boundaries from a world's events
func (sm *StateManager) Observe(ev event.Event) {
	switch e := ev.(type) {
	case event.Reset:
		sm.mu.Lock()
		sm.startTime = sm.now()
		sm.inGame = true
		sm.mu.Unlock()
	case event.GameOver:
		sm.AddToHistory(e.FinalScore, e.FinalBodyLength, e.Cause)
	}
}

// AddToHistory appends a finished game started at the last Reset
func (sm *StateManager) AddToHistory(score, bodyLength int, cause types.CollisionType) GameRecord {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	end := sm.now()
	start := sm.startTime
	if !sm.inGame {
		start = end
	}
	sm.inGame = false

	record := GameRecord{
		ID:         uuid.NewString(),
		StartTime:  start,
		EndTime:    end,
		Score:      score,
		BodyLength: bodyLength,
		Cause:      cause,
	}

	if len(sm.scoreHistory) >= MaxHistory {
		sm.scoreHistory = sm.scoreHistory[1:]
	}
	sm.scoreHistory = append(sm.scoreHistory, record)
	sm.gamesPlayed++
	if score > sm.highScore {
		sm.highScore = score
	}
	return record
}

func (sm *StateManager) GetHighScore() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.highScore
}

// GetGamesPlayed counts every finished game, including ones evicted from
// the history.
func (sm *StateManager) GetGamesPlayed() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.gamesPlayed
}

func (sm *StateManager) GetScoreHistory() []GameRecord {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return append([]GameRecord(nil), sm.scoreHistory...)
}

// GetAverageScore is the mean score over the kept history
func (sm *StateManager) GetAverageScore() float64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if len(sm.scoreHistory) == 0 {
		return 0
	}
	total := 0
	for _, r := range sm.scoreHistory {
		total += r.Score
	}
	return float64(total) / float64(len(sm.scoreHistory))
}

func (sm *StateManager) GetMedianScore() float64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if len(sm.scoreHistory) == 0 {
		return 0
	}
	scores := make([]int, len(sm.scoreHistory))
	for i, r := range sm.scoreHistory {
		scores[i] = r.Score
	}
	sort.Ints(scores)

	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		return float64(scores[mid-1]+scores[mid]) / 2
	}
	return float64(scores[mid])
}

// GetMaxScore is the best score still in the history
func (sm *StateManager) GetMaxScore() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	maxScore := 0
	for _, r := range sm.scoreHistory {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}
	return maxScore
}

func (sm *StateManager) GetAverageDuration() time.Duration {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if len(sm.scoreHistory) == 0 {
		return 0
	}
	var total time.Duration
	for _, r := range sm.scoreHistory {
		total += r.Duration()
	}
	return total / time.Duration(len(sm.scoreHistory))
}
