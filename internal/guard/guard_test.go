package guard

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testGuard() *Guard {
	return NewWithClock(func() time.Time { return testNow })
}

func validSubmission() Submission {
	return Submission{
		CompanyName:    "Shopify",
		RoleTitle:      "Backend Developer Intern",
		Location:       "Ottawa, ON",
		SalaryHourly:   33.50,
		ReviewText:     "Great team, learned a lot.",
		Program:        "Computer Science",
		University:     "University of Waterloo",
		Term:           "Winter 2025",
		JobType:        "co-op",
		Level:          "junior",
		WorkType:       "hybrid",
		FormRenderedAt: testNow.Add(-45 * time.Second),
	}
}

func TestCheck_ValidSubmissionPasses(t *testing.T) {
	t.Parallel()

	rej := testGuard().Check(validSubmission(), nil)
	assert.Nil(t, rej)
}

func TestCheck_HoneypotFilled(t *testing.T) {
	t.Parallel()

	sub := validSubmission()
	sub.Honeypot = "http://spam.example"

	rej := testGuard().Check(sub, nil)
	require.NotNil(t, rej)
	assert.Equal(t, KindBot, rej.Kind)
	assert.True(t, rej.Silent)
	assert.Equal(t, "honeypot field filled", rej.Signal)
	// The public message must not reveal the tripwire.
	assert.Equal(t, "Submission could not be processed", rej.Message)
}

func TestCheck_FormFilledTooFast(t *testing.T) {
	t.Parallel()

	sub := validSubmission()
	sub.FormRenderedAt = testNow.Add(-2 * time.Second)

	rej := testGuard().Check(sub, nil)
	require.NotNil(t, rej)
	assert.Equal(t, KindBot, rej.Kind)
	assert.True(t, rej.Silent)
	assert.Equal(t, "form filled too fast", rej.Signal)
}

func TestCheck_UnknownRenderTimeIsAllowed(t *testing.T) {
	t.Parallel()

	sub := validSubmission()
	sub.FormRenderedAt = time.Time{}

	assert.Nil(t, testGuard().Check(sub, nil))
}

func TestCheck_SalaryBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		salary  float64
		message string
	}{
		{"below minimum", 9.99, "Minimum hourly rate is $10/hour. Please check your entry."},
		{"above maximum", 300.01, "Maximum hourly rate is $300/hour. Please enter a realistic co-op salary."},
		{"at minimum", 10, ""},
		{"at maximum", 300, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			sub.SalaryHourly = tt.salary

			rej := testGuard().Check(sub, nil)
			if tt.message == "" {
				assert.Nil(t, rej)
				return
			}
			require.NotNil(t, rej)
			assert.Equal(t, KindValidation, rej.Kind)
			assert.False(t, rej.Silent)
			assert.Equal(t, tt.message, rej.Message)
		})
	}
}

func TestCheck_ReviewWordCount(t *testing.T) {
	t.Parallel()

	sub := validSubmission()
	sub.ReviewText = strings.TrimSpace(strings.Repeat("word ", 151))

	rej := testGuard().Check(sub, nil)
	require.NotNil(t, rej)
	assert.Equal(t, KindValidation, rej.Kind)
	assert.Equal(t, "Review is too long (151 words). Please limit to 150 words or less.", rej.Message)

	sub.ReviewText = strings.TrimSpace(strings.Repeat("word ", 150))
	assert.Nil(t, testGuard().Check(sub, nil))
}

func TestCheck_FieldLengths(t *testing.T) {
	t.Parallel()

	t.Run("company too short", func(t *testing.T) {
		sub := validSubmission()
		sub.CompanyName = "A"
		rej := testGuard().Check(sub, nil)
		require.NotNil(t, rej)
		assert.Equal(t, "Company name must be between 2 and 100 characters", rej.Message)
	})

	t.Run("company too long", func(t *testing.T) {
		sub := validSubmission()
		sub.CompanyName = strings.Repeat("a", 101)
		rej := testGuard().Check(sub, nil)
		require.NotNil(t, rej)
		assert.Equal(t, "Company name must be between 2 and 100 characters", rej.Message)
	})

	t.Run("role too long", func(t *testing.T) {
		sub := validSubmission()
		sub.RoleTitle = strings.Repeat("a", 101)
		rej := testGuard().Check(sub, nil)
		require.NotNil(t, rej)
		assert.Equal(t, "Role title must be 100 characters or less", rej.Message)
	})

	t.Run("review too many characters", func(t *testing.T) {
		sub := validSubmission()
		// 143 words but over 1000 characters.
		sub.ReviewText = strings.TrimSpace(strings.Repeat("abcdefg ", 143))
		rej := testGuard().Check(sub, nil)
		require.NotNil(t, rej)
		assert.Equal(t, "Review must be 1000 characters or less", rej.Message)
	})

	t.Run("classifier too long", func(t *testing.T) {
		sub := validSubmission()
		sub.JobType = strings.Repeat("a", 51)
		rej := testGuard().Check(sub, nil)
		require.NotNil(t, rej)
		assert.Equal(t, "Job type must be 50 characters or less", rej.Message)
	})
}

func TestCheck_Cooldown(t *testing.T) {
	t.Parallel()

	t.Run("within cooldown", func(t *testing.T) {
		last := testNow.Add(-30 * time.Second)
		rej := testGuard().Check(validSubmission(), &last)
		require.NotNil(t, rej)
		assert.Equal(t, KindCooldown, rej.Kind)
		assert.Equal(t, "Please wait 90 seconds before submitting again", rej.Message)
	})

	t.Run("cooldown elapsed", func(t *testing.T) {
		last := testNow.Add(-121 * time.Second)
		assert.Nil(t, testGuard().Check(validSubmission(), &last))
	})

	t.Run("remainder rounds up to whole seconds", func(t *testing.T) {
		last := testNow.Add(-30*time.Second - 500*time.Millisecond)
		rej := testGuard().Check(validSubmission(), &last)
		require.NotNil(t, rej)
		assert.Equal(t, fmt.Sprintf("Please wait %d seconds before submitting again", 90), rej.Message)
	})
}

func TestCheckContent_IgnoresAntiBotAndCooldown(t *testing.T) {
	t.Parallel()

	// Content checks alone: a filled honeypot and a missing render
	// time are not its concern, out-of-bounds salary still is.
	sub := validSubmission()
	sub.Honeypot = "filled"
	sub.FormRenderedAt = time.Time{}

	assert.Nil(t, testGuard().CheckContent(sub))

	sub.SalaryHourly = 9999
	rej := testGuard().CheckContent(sub)
	require.NotNil(t, rej)
	assert.Equal(t, KindValidation, rej.Kind)
}

func TestCheck_OrderBotBeforeValidation(t *testing.T) {
	t.Parallel()

	// A submission failing both honeypot and salary reports the bot
	// rejection, keeping validation details away from bots.
	sub := validSubmission()
	sub.Honeypot = "filled"
	sub.SalaryHourly = 500

	rej := testGuard().Check(sub, nil)
	require.NotNil(t, rej)
	assert.Equal(t, KindBot, rej.Kind)
}
