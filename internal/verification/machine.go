package verification

import (
	"errors"
	"time"
)

// Step is one state of the pre-booking verification sequence. Transitions
// are forward-only on explicit user action; Back rewinds one step. The
// terminal step issues a one-shot token that booking creation consumes, so
// completion is enforced server-side rather than re-derived by the client.
type Step string

const (
	StepCustomerType Step = "customer-type"
	StepDocuments    Step = "documents"
	StepAge          Step = "age-verification"
	StepComplete     Step = "complete"
)

const MinimumRentalAge = 18

var (
	ErrWrongStep       = errors.New("action not valid for current verification step")
	ErrAlreadyComplete = errors.New("verification already complete")
	ErrCannotGoBack    = errors.New("cannot go back from the first step")
	ErrUnderage        = errors.New("you must be at least 18 years old to rent a bike")
	ErrNoDocuments     = errors.New("at least one document is required")
	ErrNoNationality   = errors.New("nationality is required")
)

var previous = map[Step]Step{
	StepDocuments: StepCustomerType,
	StepAge:       StepDocuments,
}

// Session is the server-held wizard state, persisted in Redis between steps.
type Session struct {
	ID           string    `json:"id"`
	UserID       uint      `json:"userId"`
	Step         Step      `json:"step"`
	Nationality  string    `json:"nationality,omitempty"`
	DocumentURLs []string  `json:"documentUrls,omitempty"`
	DateOfBirth  string    `json:"dateOfBirth,omitempty"`
	Token        string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewSession starts a fresh sequence at the first step.
func NewSession(id string, userID uint) *Session {
	return &Session{
		ID:        id,
		UserID:    userID,
		Step:      StepCustomerType,
		CreatedAt: time.Now(),
	}
}

// SetCustomerType records nationality and advances to document upload.
func (s *Session) SetCustomerType(nationality string) error {
	if s.Step != StepCustomerType {
		return ErrWrongStep
	}
	if nationality == "" {
		return ErrNoNationality
	}
	s.Nationality = nationality
	s.Step = StepDocuments
	return nil
}

// AttachDocuments records uploaded document URLs and advances to the age check.
func (s *Session) AttachDocuments(urls []string) error {
	if s.Step != StepDocuments {
		return ErrWrongStep
	}
	if len(urls) == 0 {
		return ErrNoDocuments
	}
	s.DocumentURLs = append(s.DocumentURLs, urls...)
	s.Step = StepAge
	return nil
}

// VerifyAge checks the renter is of age and moves the session to the
// terminal step. The caller mints the completion token.
func (s *Session) VerifyAge(dateOfBirth, now time.Time) error {
	if s.Step != StepAge {
		return ErrWrongStep
	}
	if Age(dateOfBirth, now) < MinimumRentalAge {
		return ErrUnderage
	}
	s.DateOfBirth = dateOfBirth.Format("2006-01-02")
	s.Step = StepComplete
	return nil
}

// Back rewinds one step. The terminal step cannot be left.
func (s *Session) Back() error {
	if s.Step == StepComplete {
		return ErrAlreadyComplete
	}
	prev, ok := previous[s.Step]
	if !ok {
		return ErrCannotGoBack
	}
	s.Step = prev
	return nil
}

// Verified reports whether the sequence reached the terminal step.
func (s *Session) Verified() bool {
	return s.Step == StepComplete
}

// Age computes full years between birth and now, counting the birthday
// itself as already reached.
func Age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
