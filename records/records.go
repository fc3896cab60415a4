package records

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/automoto/keyrunner/logger"
	"github.com/quasilyte/gdata"
	"github.com/sirupsen/logrus"
)

// MaxRecords is how many results the leaderboard keeps
const MaxRecords = 10

const (
	boardKey = "records"
	lastKey  = "last"
)

// Record is one finished or lost run
type Record struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Level int       `json:"level"`
	Won   bool      `json:"won"`
	At    time.Time `json:"at"`
}

// Backend is the item storage the store writes through. *gdata.Manager
// satisfies it.
type Backend interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Open returns the on-disk backend for app
func Open(app string) (Backend, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: app,
	})
	if err != nil {
		return nil, fmt.Errorf("records: open storage: %w", err)
	}
	return m, nil
}

// Store keeps the leaderboard sorted by score, best first. Equal scores keep
// the order they were added in.
type Store struct {
	backend Backend
	log     *logrus.Entry

	mu    sync.Mutex
	board []Record
	last  *Record
}

// NewStore reads whatever the backend already holds. Unreadable data is
// logged and treated as empty.
func NewStore(backend Backend) *Store {
	s := &Store{
		backend: backend,
		log:     logger.For("records"),
	}
	if backend == nil {
		return s
	}

	if err := s.load(boardKey, &s.board); err != nil {
		s.log.WithError(err).Warn("Could not load records")
		s.board = nil
	}
	var last Record
	if err := s.load(lastKey, &last); err != nil {
		s.log.WithError(err).Warn("Could not load last result")
	} else if !last.At.IsZero() {
		s.last = &last
	}
	return s
}

func (s *Store) load(key string, v any) error {
	data, err := s.backend.LoadItem(key)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		// Nothing saved yet
		return nil
	}
	return json.Unmarshal(data, v)
}

func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.backend.SaveItem(key, data)
}

// Add records a result and returns its 1-based rank, or 0 if it did not make
// the board. The result always becomes the last one.
func (s *Store) Add(r Record) (int, error) {
	if r.At.IsZero() {
		r.At = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Insert after every entry with an equal or better score
	i := sort.Search(len(s.board), func(i int) bool {
		return s.board[i].Score < r.Score
	})
	rank := 0
	if i < MaxRecords {
		s.board = append(s.board, Record{})
		copy(s.board[i+1:], s.board[i:])
		s.board[i] = r
		if len(s.board) > MaxRecords {
			s.board = s.board[:MaxRecords]
		}
		rank = i + 1
	}
	last := r
	s.last = &last

	s.log.WithFields(logrus.Fields{
		"score": r.Score,
		"level": r.Level,
		"rank":  rank,
	}).Info("result recorded")

	if s.backend == nil {
		return rank, nil
	}
	if err := s.save(boardKey, s.board); err != nil {
		return rank, fmt.Errorf("records: save board: %w", err)
	}
	if err := s.save(lastKey, r); err != nil {
		return rank, fmt.Errorf("records: save last: %w", err)
	}
	return rank, nil
}

// Top returns a copy of the leaderboard
func (s *Store) Top() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.board))
	copy(out, s.board)
	return out
}

// Last returns the most recent result
func (s *Store) Last() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Record{}, false
	}
	return *s.last, true
}

// Best returns the top score, 0 when the board is empty
func (s *Store) Best() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.board) == 0 {
		return 0
	}
	return s.board[0].Score
}

// Clear empties the leaderboard and forgets the last result
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = nil
	s.last = nil
	if s.backend == nil {
		return nil
	}
	if err := s.backend.SaveItem(boardKey, nil); err != nil {
		return fmt.Errorf("records: clear: %w", err)
	}
	return s.backend.SaveItem(lastKey, nil)
}
