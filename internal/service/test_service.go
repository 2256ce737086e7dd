package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/edumetrics/assess-backend/internal/config"
	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/edumetrics/assess-backend/internal/session"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNoSession is returned when a user has no test session at all.
var ErrNoSession = errors.New("no test session for user")

// TestService owns the per-user test sessions. Each session is
// single-writer by design; the registry mutex serializes the HTTP
// handlers and the timer worker against each other.
type TestService struct {
	src       session.QuestionSource
	submitter *session.Submitter
	cfg       session.Config
	log       zerolog.Logger

	mu       sync.Mutex
	sessions map[int]*session.Session
}

// NewTestService creates a TestService. src supplies candidate
// questions (nil is tolerated: every session then uses the built-in
// set) and store receives the per-subject submission batches.
func NewTestService(src session.QuestionSource, store session.ResultStore, cfg *config.Config, log zerolog.Logger) *TestService {
	return &TestService{
		src:       src,
		submitter: session.NewSubmitter(store),
		cfg: session.Config{
			PoolLimit:   cfg.QuestionPoolLimit,
			Size:        cfg.TestSessionSize,
			DurationSec: cfg.TestDurationSec,
		},
		log:      log.With().Str("component", "test_service").Logger(),
		sessions: make(map[int]*session.Session),
	}
}

// TestQuestionView is a question as exposed to the test taker: the
// correct-answer index never leaves the server.
type TestQuestionView struct {
	ID         uuid.UUID        `json:"id"`
	Subject    string           `json:"subject"`
	Prompt     string           `json:"question"`
	Options    []string         `json:"options"`
	Difficulty model.Difficulty `json:"difficulty"`
}

// TestState is the session snapshot returned to the presentation layer.
type TestState struct {
	Active        bool                 `json:"active"`
	Current       int                  `json:"current"`
	RemainingSec  int                  `json:"remaining_seconds"`
	StartedAt     time.Time            `json:"started_at"`
	Questions     []TestQuestionView   `json:"questions"`
	Answers       []model.AnswerRecord `json:"answers"`
	AnsweredCount int                  `json:"answered_count"`
}

// Start begins a fresh session for the user. Starting while a session
// is already active is an explicit reset: the prior attempt is
// discarded and logged, never silently kept.
func (s *TestService) Start(ctx context.Context, identity *model.Identity) (*TestState, error) {
	sess, err := session.Start(ctx, s.src, s.cfg)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if prior, ok := s.sessions[identity.ID]; ok && prior.IsActive() {
		s.log.Warn().
			Int("user_id", identity.ID).
			Int("answered", prior.AnsweredCount()).
			Msg("Active session replaced by restart")
	}
	s.sessions[identity.ID] = sess
	s.mu.Unlock()

	s.log.Info().
		Int("user_id", identity.ID).
		Int("questions", len(sess.Questions)).
		Int("duration_sec", sess.RemainingSec).
		Msg("Test session started")

	return snapshot(sess), nil
}

// State returns the current session snapshot for the user.
func (s *TestService) State(userID int) (*TestState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	return snapshot(sess), nil
}

// SelectAnswer records an option choice on the user's active session.
func (s *TestService) SelectAnswer(userID int, questionID uuid.UUID, option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return ErrNoSession
	}
	return sess.SelectAnswer(questionID, option)
}

// ToggleMark flips the marked-for-review flag, returning the new value.
func (s *TestService) ToggleMark(userID int, questionID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return false, ErrNoSession
	}
	return sess.ToggleMark(questionID)
}

// NavigateTo moves the cursor to an absolute index.
func (s *TestService) NavigateTo(userID, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return ErrNoSession
	}
	return sess.NavigateTo(index)
}

// Next advances the cursor, clamping at the last question.
func (s *TestService) Next(userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return ErrNoSession
	}
	if !sess.IsActive() {
		return session.ErrNotActive
	}
	sess.Next()
	return nil
}

// Prev moves the cursor back, clamping at zero.
func (s *TestService) Prev(userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return ErrNoSession
	}
	if !sess.IsActive() {
		return session.ErrNotActive
	}
	sess.Prev()
	return nil
}

// End deactivates the user's session without submitting. State stays
// inspectable.
func (s *TestService) End(userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return ErrNoSession
	}
	sess.End()
	return nil
}

// Submit scores the session and persists one result row per subject.
// A persistence failure leaves the session active for retry; only a
// successful write deactivates it. The ended session stays in the
// registry for post-mortem State calls until the next Start.
func (s *TestService) Submit(ctx context.Context, identity *model.Identity) ([]model.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if identity == nil {
		return nil, session.ErrAuthRequired
	}
	sess, ok := s.sessions[identity.ID]
	if !ok {
		return nil, ErrNoSession
	}

	results, err := s.submitter.Submit(ctx, identity, sess)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("user_id", identity.ID).
		Int("subjects", len(results)).
		Msg("Test results submitted")
	return results, nil
}

// TickActiveSessions burns one second on every active session and
// returns how many sessions this tick ended. Called by the timer
// worker at 1 Hz.
func (s *TestService) TickActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ended := 0
	for userID, sess := range s.sessions {
		if sess.Tick() {
			ended++
			s.log.Info().Int("user_id", userID).Msg("Test session ended by timer")
		}
	}
	return ended
}

func snapshot(sess *session.Session) *TestState {
	questions := make([]TestQuestionView, len(sess.Questions))
	for i, q := range sess.Questions {
		questions[i] = TestQuestionView{
			ID:         q.ID,
			Subject:    q.Subject,
			Prompt:     q.Prompt,
			Options:    q.Options,
			Difficulty: q.Difficulty,
		}
	}
	answers := make([]model.AnswerRecord, len(sess.Answers))
	copy(answers, sess.Answers)

	return &TestState{
		Active:        sess.IsActive(),
		Current:       sess.Current,
		RemainingSec:  sess.RemainingSec,
		StartedAt:     sess.StartedAt,
		Questions:     questions,
		Answers:       answers,
		AnsweredCount: sess.AnsweredCount(),
	}
}
