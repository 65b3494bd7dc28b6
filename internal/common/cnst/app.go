package cnst

// XLang is the context key and header name carrying the client's language preference
const XLang = "X-Lang"

// Supported languages
const (
	LangEN = "en"
	LangZH = "zh"

	LangDefault = LangEN
)
