package models

// VerificationStatus is the offer verification sub-state. A single
// discriminant field keeps impossible combinations (verified with a
// lingering token) unrepresentable:
//
//	unverified -> pending -> verified (terminal)
//
// The token is non-null only in pending; verified_at only in verified.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
)

// Sentiment classification of a review, assigned asynchronously.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)
