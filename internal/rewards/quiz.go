package rewards

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/playmart/internal/catalog"
	"github.com/example/playmart/internal/notify"
)

// Quiz session states.
const (
	QuizLocked     = "locked"
	QuizIdle       = "idle"
	QuizInProgress = "in_progress"
	QuizCompleted  = "completed"
)

const noAnswer = -1

// quizSession is the ephemeral state of one user's quiz run. It is
// never persisted and is re-drawn when the calendar day changes.
type quizSession struct {
	day       string
	questions []catalog.QuizQuestion
	index     int
	selected  int
	score     int
	deadline  time.Time
	completed bool
	seq       int
	timer     *time.Timer
}

// QuestionView is a question as shown to the player, without the
// correct answer index.
type QuestionView struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Points   int      `json:"points"`
	Category string   `json:"category"`
}

// QuizState is the externally visible quiz status.
type QuizState struct {
	Status          string        `json:"status"`
	QuestionNumber  int           `json:"question_number,omitempty"`
	QuestionCount   int           `json:"question_count,omitempty"`
	Question        *QuestionView `json:"question,omitempty"`
	TimeLeftSeconds int           `json:"time_left_seconds,omitempty"`
	Score           int           `json:"score"`
	Streak          int           `json:"streak"`
}

// StartQuiz opens today's quiz session, drawing a fresh random sample
// of distinct questions. Rejected when today's quiz was already
// completed or a session is already running.
func (s *Service) StartQuiz(userID uuid.UUID) (QuizState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.loadProgress(userID)
	today := s.today()

	if !p.QuizAvailable(today) {
		return QuizState{}, ErrQuizAlreadyCompleted
	}
	if old, ok := s.sessions[userID]; ok {
		if old.day == today && !old.completed {
			return QuizState{}, ErrQuizInProgress
		}
		// disarm the abandoned session's countdown before replacing it
		if old.timer != nil {
			old.timer.Stop()
			old.timer = nil
		}
	}

	sess := &quizSession{
		day:       today,
		questions: s.drawQuestions(),
		selected:  noAnswer,
		deadline:  s.clock().Add(s.cfg.QuestionTime),
	}
	s.sessions[userID] = sess
	s.scheduleExpiry(userID, sess)

	return s.quizStateLocked(userID, p), nil
}

// SelectAnswer records the chosen option for the current question.
// Only one choice is allowed per question.
func (s *Service) SelectAnswer(userID uuid.UUID, answer int) (QuizState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.activeSession(userID)
	if !ok {
		return QuizState{}, ErrNoActiveQuestion
	}
	if sess.selected != noAnswer {
		return QuizState{}, ErrAnswerAlreadyChosen
	}
	if answer < 0 || answer >= len(sess.questions[sess.index].Options) {
		return QuizState{}, ErrInvalidAnswer
	}

	sess.selected = answer
	return s.quizStateLocked(userID, s.loadProgress(userID)), nil
}

// Advance scores the current question and moves to the next one, or
// completes the session on the last question. Advancing without a
// selected answer scores zero.
func (s *Service) Advance(userID uuid.UUID) (QuizState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.activeSession(userID)
	if !ok {
		return QuizState{}, ErrNoActiveQuestion
	}

	s.advanceLocked(userID, sess)
	return s.quizStateLocked(userID, s.loadProgress(userID)), nil
}

// Quiz returns the user's quiz status for display.
func (s *Service) Quiz(userID uuid.UUID) QuizState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quizStateLocked(userID, s.loadProgress(userID))
}

func (s *Service) activeSession(userID uuid.UUID) (*quizSession, bool) {
	sess, ok := s.sessions[userID]
	if !ok || sess.completed || sess.day != s.today() {
		return nil, false
	}
	return sess, true
}

func (s *Service) drawQuestions() []catalog.QuizQuestion {
	count := s.cfg.QuestionsPerQuiz
	if count > len(s.cat.Questions) {
		count = len(s.cat.Questions)
	}

	drawn := make([]catalog.QuizQuestion, 0, count)
	for _, i := range s.rng.Perm(len(s.cat.Questions))[:count] {
		drawn = append(drawn, s.cat.Questions[i])
	}
	return drawn
}

// scheduleExpiry arms the per-question countdown. The expiry keeps
// both the session pointer and the sequence number: the pointer fences
// off timers from replaced sessions, the sequence fences off questions
// already advanced within the live one.
func (s *Service) scheduleExpiry(userID uuid.UUID, sess *quizSession) {
	seq := sess.seq
	wait := sess.deadline.Sub(s.clock())
	sess.timer = time.AfterFunc(wait, func() {
		s.expireQuestion(userID, sess, seq)
	})
}

// expireQuestion fires when a question countdown runs out: the
// question is advanced as answered, scoring whatever was selected so
// far (nothing, when nothing was).
func (s *Service) expireQuestion(userID uuid.UUID, sess *quizSession, seq int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessions[userID] != sess || sess.completed || sess.seq != seq {
		return
	}
	if sess.day != s.today() {
		return
	}
	s.advanceLocked(userID, sess)
}

func (s *Service) advanceLocked(userID uuid.UUID, sess *quizSession) {
	question := sess.questions[sess.index]
	if sess.selected == question.CorrectAnswer {
		sess.score += question.Points
	}

	sess.seq++
	if sess.timer != nil {
		sess.timer.Stop()
		sess.timer = nil
	}

	if sess.index < len(sess.questions)-1 {
		sess.index++
		sess.selected = noAnswer
		sess.deadline = s.clock().Add(s.cfg.QuestionTime)
		s.scheduleExpiry(userID, sess)
		return
	}

	s.completeLocked(userID, sess)
}

func (s *Service) completeLocked(userID uuid.UUID, sess *quizSession) {
	sess.completed = true

	p := s.loadProgress(userID)
	if p.LastQuizDate == s.yesterday() {
		p.QuizStreak++
	} else {
		p.QuizStreak = 1
	}
	p.TotalPoints += sess.score
	p.LastQuizDate = sess.day

	s.awardBadges(userID, &p)
	s.saveProgress(userID, p)

	s.notify(userID, notify.KindQuiz, "Quiz Complete!",
		fmt.Sprintf("You earned %d points! Current streak: %d days", sess.score, p.QuizStreak))
}

func (s *Service) quizStateLocked(userID uuid.UUID, p Progress) QuizState {
	state := QuizState{Streak: p.QuizStreak}
	today := s.today()

	sess, ok := s.sessions[userID]
	switch {
	case ok && sess.day == today && sess.completed:
		state.Status = QuizCompleted
		state.Score = sess.score
	case ok && sess.day == today:
		question := sess.questions[sess.index]
		timeLeft := int(sess.deadline.Sub(s.clock()).Round(time.Second) / time.Second)
		if timeLeft < 0 {
			timeLeft = 0
		}
		state.Status = QuizInProgress
		state.QuestionNumber = sess.index + 1
		state.QuestionCount = len(sess.questions)
		state.Question = &QuestionView{
			ID:       question.ID,
			Question: question.Question,
			Options:  question.Options,
			Points:   question.Points,
			Category: question.Category,
		}
		state.TimeLeftSeconds = timeLeft
		state.Score = sess.score
	case !p.QuizAvailable(today):
		state.Status = QuizLocked
	default:
		state.Status = QuizIdle
	}

	return state
}
