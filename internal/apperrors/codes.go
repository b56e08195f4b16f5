package apperrors

// Error codes grouped by domain.
const (
	// Authentication
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"

	// Resources
	CodeUserNotFound  ErrorCode = "USER_NOT_FOUND"
	CodeOfferNotFound ErrorCode = "OFFER_NOT_FOUND"
	CodeNotFound      ErrorCode = "NOT_FOUND"

	// Submission pipeline
	CodeSubmissionRejected ErrorCode = "SUBMISSION_REJECTED"
	CodeRateLimited        ErrorCode = "RATE_LIMITED"
	CodeMissingFingerprint ErrorCode = "MISSING_FINGERPRINT"

	// Offer verification
	CodeInvalidVerificationLink  ErrorCode = "INVALID_REQUEST"
	CodeInvalidVerificationToken ErrorCode = "INVALID_VERIFICATION_TOKEN"
	CodeAlreadyVerified          ErrorCode = "ALREADY_VERIFIED"
	CodeEmailDomainNotAllowed    ErrorCode = "EMAIL_DOMAIN_NOT_ALLOWED"
	CodeDispatchFailed           ErrorCode = "VERIFICATION_EMAIL_FAILED"

	// Business logic
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"

	// System
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
)
