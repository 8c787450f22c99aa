package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/voyago/voyago/internal/domain/model"
	"github.com/voyago/voyago/pkg/logger"
	"github.com/voyago/voyago/pkg/metrics"
)

// Recommender is the engine operation a session multiplexes.
type Recommender interface {
	Recommend(ctx context.Context, profile model.UserProfile, loc *model.Location, sel model.FilterSelection) ([]model.ScoredRecommendation, error)
}

// Result is one delivered session outcome. RequestID identifies which Submit
// produced it.
type Result struct {
	RequestID       uint64
	Recommendations []model.ScoredRecommendation
	Err             error
}

// SessionOption applies a configuration option to a Session.
type SessionOption func(*Session)

// WithSessionLogger sets a custom logger for the session.
func WithSessionLogger(l logger.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session serializes one user's interactive recommendation requests. When
// requests overlap, only the most recently submitted one may deliver a
// result; superseded computations are cancelled and their output discarded,
// so a stale result can never overwrite a fresh one.
//
// Cancellation is cooperative: engine operations are short and pure, so it
// is enforced by comparing a monotonic request counter at delivery time and
// by cancelling the superseded request's context.
type Session struct {
	id          string
	recommender Recommender
	logger      logger.Logger

	counter atomic.Uint64
	results chan Result

	mu         sync.Mutex
	cancelPrev context.CancelFunc
}

// NewSession creates a session delivering results on a buffered channel.
func NewSession(r Recommender, opts ...SessionOption) *Session {
	s := &Session{
		id:          uuid.NewString(),
		recommender: r,
		results:     make(chan Result, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("session")
	}
	return s
}

// ID returns the session's identity, used in logs only.
func (s *Session) ID() string {
	return s.id
}

// Results is the consumer side of the session. At most one result is
// pending; a newer delivery evicts an unconsumed older one, keeping
// last-write-wins even with a slow consumer.
func (s *Session) Results() <-chan Result {
	return s.results
}

// Submit issues a new request and returns its id immediately. Any in-flight
// request is cancelled. The computation runs on its own goroutine and
// delivers on Results only if it is still the newest request when it
// finishes.
func (s *Session) Submit(ctx context.Context, profile model.UserProfile, loc *model.Location, sel model.FilterSelection) uint64 {
	id := s.counter.Add(1)

	s.mu.Lock()
	if s.cancelPrev != nil {
		s.cancelPrev()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	s.cancelPrev = cancel
	s.mu.Unlock()

	go func() {
		defer cancel()
		recs, err := s.recommender.Recommend(reqCtx, profile, loc, sel)
		s.deliver(Result{RequestID: id, Recommendations: recs, Err: err})
	}()

	return id
}

// Current returns the id of the most recently submitted request.
func (s *Session) Current() uint64 {
	return s.counter.Load()
}

// deliver publishes r unless it has been superseded. The counter comparison
// and channel handoff happen under the session lock so two finishing
// requests cannot race past each other.
func (s *Session) deliver(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.RequestID != s.counter.Load() {
		metrics.RecordSuperseded()
		s.logger.Debug(context.Background(), "dropping superseded result",
			logger.String("session", s.id),
			logger.Any("request", r.RequestID),
		)
		return
	}

	// Evict an unconsumed older result rather than block.
	select {
	case s.results <- r:
	default:
		select {
		case <-s.results:
		default:
		}
		s.results <- r
	}
}
