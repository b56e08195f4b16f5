// Package guard rejects malformed, bot-like, or too-frequent offer
// submissions before anything reaches the store. Checks run in a fixed
// order and the first failure wins; a submission that fails here has
// caused no side effects.
package guard

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// MinFillTime is the shortest believable human form-fill time.
	MinFillTime = 5 * time.Second

	// Cooldown between successful submissions from one browser. This
	// is advisory UX only; the server-side rate limiter is the
	// enforcement point.
	Cooldown = 120 * time.Second

	MinHourlyRate = 10.0
	MaxHourlyRate = 300.0

	MaxReviewWords = 150

	MinCompanyLen    = 2
	MaxShortFieldLen = 100
	MaxReviewLen     = 1000
	MaxClassifierLen = 50
)

// RejectionKind classifies why a submission was turned away.
type RejectionKind string

const (
	KindBot        RejectionKind = "bot_suspected"
	KindValidation RejectionKind = "validation"
	KindCooldown   RejectionKind = "cooldown"
)

// Rejection is a guard failure. Silent rejections get a bland
// user-facing message; Signal names the tripwire for the server log.
type Rejection struct {
	Kind    RejectionKind
	Message string
	Signal  string
	Silent  bool
}

func (r *Rejection) Error() string {
	return r.Message
}

// Submission holds the candidate offer fields the guard inspects.
type Submission struct {
	CompanyName  string
	RoleTitle    string
	Location     string
	SalaryHourly float64
	ReviewText   string
	Program      string
	University   string
	Term         string
	JobType      string
	Level        string
	WorkType     string

	// Honeypot must stay empty; the real form never exposes it.
	Honeypot string

	// FormRenderedAt is when the submission form was first shown.
	FormRenderedAt time.Time
}

// Guard evaluates submissions. The zero value is not usable; call New.
type Guard struct {
	now func() time.Time
}

func New() *Guard {
	return &Guard{now: time.Now}
}

// NewWithClock is for tests.
func NewWithClock(now func() time.Time) *Guard {
	return &Guard{now: now}
}

// Check runs all checks in order. lastSubmission is the browser's
// previous successful submission time, nil if none is known.
func (g *Guard) Check(sub Submission, lastSubmission *time.Time) *Rejection {
	now := g.now()

	if sub.Honeypot != "" {
		return &Rejection{
			Kind:    KindBot,
			Message: "Submission could not be processed",
			Signal:  "honeypot field filled",
			Silent:  true,
		}
	}

	if !sub.FormRenderedAt.IsZero() && now.Sub(sub.FormRenderedAt) < MinFillTime {
		return &Rejection{
			Kind:    KindBot,
			Message: "Submission could not be processed",
			Signal:  "form filled too fast",
			Silent:  true,
		}
	}

	if rej := g.CheckContent(sub); rej != nil {
		return rej
	}

	if lastSubmission != nil {
		elapsed := now.Sub(*lastSubmission)
		if elapsed < Cooldown {
			remaining := int(math.Ceil((Cooldown - elapsed).Seconds()))
			return &Rejection{
				Kind:    KindCooldown,
				Message: fmt.Sprintf("Please wait %d seconds before submitting again", remaining),
			}
		}
	}

	return nil
}

// CheckContent runs only the content checks: salary bounds, review
// word count and field lengths. Edits go through this directly, so an
// owner cannot push a stored offer outside the bounds a fresh
// submission must satisfy. Edits carry no anti-bot fields and no
// cooldown, hence the split.
func (g *Guard) CheckContent(sub Submission) *Rejection {
	if sub.SalaryHourly > MaxHourlyRate {
		return validation("Maximum hourly rate is $300/hour. Please enter a realistic co-op salary.")
	}
	if sub.SalaryHourly < MinHourlyRate {
		return validation("Minimum hourly rate is $10/hour. Please check your entry.")
	}

	if sub.ReviewText != "" {
		wordCount := len(strings.Fields(sub.ReviewText))
		if wordCount > MaxReviewWords {
			return validation(fmt.Sprintf(
				"Review is too long (%d words). Please limit to %d words or less.",
				wordCount, MaxReviewWords,
			))
		}
	}

	return g.checkLengths(sub)
}

func (g *Guard) checkLengths(sub Submission) *Rejection {
	if n := len(sub.CompanyName); n < MinCompanyLen || n > MaxShortFieldLen {
		return validation(fmt.Sprintf(
			"Company name must be between %d and %d characters",
			MinCompanyLen, MaxShortFieldLen,
		))
	}

	shortFields := []struct {
		name  string
		value string
	}{
		{"Role title", sub.RoleTitle},
		{"Location", sub.Location},
		{"Program", sub.Program},
		{"University", sub.University},
	}
	for _, f := range shortFields {
		if len(f.value) > MaxShortFieldLen {
			return validation(fmt.Sprintf("%s must be %d characters or less", f.name, MaxShortFieldLen))
		}
	}

	if len(sub.ReviewText) > MaxReviewLen {
		return validation(fmt.Sprintf("Review must be %d characters or less", MaxReviewLen))
	}

	classifiers := []struct {
		name  string
		value string
	}{
		{"Term", sub.Term},
		{"Job type", sub.JobType},
		{"Level", sub.Level},
		{"Work type", sub.WorkType},
	}
	for _, f := range classifiers {
		if len(f.value) > MaxClassifierLen {
			return validation(fmt.Sprintf("%s must be %d characters or less", f.name, MaxClassifierLen))
		}
	}

	return nil
}

func validation(msg string) *Rejection {
	return &Rejection{Kind: KindValidation, Message: msg}
}
