package i18n

// Common errors
var (
	ErrNotFound       = NewErrorWithCode("ErrorResourceNotFound", ErrorNotFound)
	ErrUnauthorized   = NewErrorWithCode("ErrorUnauthorized", ErrorUnauthorized)
	ErrForbidden      = NewErrorWithCode("ErrorForbidden", ErrorForbidden)
	ErrBadRequest     = NewErrorWithCode("ErrorBadRequest", ErrorBadRequest)
	ErrInternalServer = NewErrorWithCode("ErrorInternalServer", ErrorInternalServer)
)

// Auth related errors
var (
	ErrorInvalidCredentials     = NewErrorWithCode("ErrorInvalidCredentials", ErrorUnauthorized)
	ErrorUserDisabled           = NewErrorWithCode("ErrorUserDisabled", ErrorForbidden)
	ErrorEmailPasswordRequired  = NewErrorWithCode("ErrorEmailPasswordRequired", ErrorBadRequest)
	ErrorInvalidOldPassword     = NewErrorWithCode("ErrorInvalidOldPassword", ErrorForbidden)
	ErrorTokenGenerationFailure = NewErrorWithCode("ErrorTokenGenerationFailure", ErrorInternalServer)
	ErrorPasswordTooShort       = NewErrorWithCode("ErrorPasswordTooShort", ErrorBadRequest)
)

// Resource related errors
var (
	ErrorCategoryNotFound   = NewErrorWithCode("ErrorCategoryNotFound", ErrorNotFound)
	ErrorTagNotFound        = NewErrorWithCode("ErrorTagNotFound", ErrorBadRequest)
	ErrorToolNotFound       = NewErrorWithCode("ErrorToolNotFound", ErrorNotFound)
	ErrorTweetNotFound      = NewErrorWithCode("ErrorTweetNotFound", ErrorNotFound)
	ErrorPromptNotFound     = NewErrorWithCode("ErrorPromptNotFound", ErrorNotFound)
	ErrorAttachmentNotFound = NewErrorWithCode("ErrorAttachmentNotFound", ErrorNotFound)
)

// Validation errors
var (
	ErrorRequiredField    = NewErrorWithCode("ErrorRequiredField", ErrorBadRequest)
	ErrorInvalidFormat    = NewErrorWithCode("ErrorInvalidFormat", ErrorBadRequest)
	ErrorInvalidValue     = NewErrorWithCode("ErrorInvalidValue", ErrorBadRequest)
	ErrorRatingOutOfRange = NewErrorWithCode("ErrorRatingOutOfRange", ErrorBadRequest)
)

// Upload related errors
var (
	ErrorFileMissing         = NewErrorWithCode("ErrorFileMissing", ErrorBadRequest)
	ErrorFileTypeNotAllowed  = NewErrorWithCode("ErrorFileTypeNotAllowed", ErrorBadRequest)
	ErrorFileTooLarge        = NewErrorWithCode("ErrorFileTooLarge", ErrorBadRequest)
	ErrorAttachmentIDMissing = NewErrorWithCode("ErrorAttachmentIDMissing", ErrorBadRequest)
	ErrorStorageFailure      = NewErrorWithCode("ErrorStorageFailure", ErrorInternalServer)
)

// Enrichment related errors
var (
	ErrorProxyURLMissing   = NewErrorWithCode("ErrorProxyURLMissing", ErrorBadRequest)
	ErrorUpstreamFailure   = NewErrorWithCode("ErrorUpstreamFailure", ErrorBadGateway)
	ErrorPlaylistIDMissing = NewErrorWithCode("ErrorPlaylistIDMissing", ErrorBadRequest)
	ErrorYouTubeKeyMissing = NewErrorWithCode("ErrorYouTubeKeyMissing", ErrorInternalServer)
)

// Success messages
const (
	SuccessLogin           = "SuccessLogin"
	SuccessPasswordChanged = "SuccessPasswordChanged"

	SuccessCategoryCreated = "SuccessCategoryCreated"
	SuccessCategoryUpdated = "SuccessCategoryUpdated"
	SuccessCategoryDeleted = "SuccessCategoryDeleted"

	SuccessTagCreated = "SuccessTagCreated"

	SuccessToolCreated  = "SuccessToolCreated"
	SuccessToolUpdated  = "SuccessToolUpdated"
	SuccessToolArchived = "SuccessToolArchived"
	SuccessToolDeleted  = "SuccessToolDeleted"

	SuccessTweetCreated  = "SuccessTweetCreated"
	SuccessTweetUpdated  = "SuccessTweetUpdated"
	SuccessTweetArchived = "SuccessTweetArchived"
	SuccessTweetDeleted  = "SuccessTweetDeleted"

	SuccessPromptCreated     = "SuccessPromptCreated"
	SuccessPromptUpdated     = "SuccessPromptUpdated"
	SuccessPromptDeleted     = "SuccessPromptDeleted"
	SuccessPromptTestCreated = "SuccessPromptTestCreated"

	SuccessFavoriteToggled = "SuccessFavoriteToggled"

	SuccessAttachmentUploaded = "SuccessAttachmentUploaded"
	SuccessAttachmentDeleted  = "SuccessAttachmentDeleted"
)
