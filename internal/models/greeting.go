package models

// Greeting languages.
const (
	LanguageEN = "en"
	LanguageES = "es"
	LanguageFR = "fr"
)

// GreetingVersion is stamped into every greeting's metadata.
const GreetingVersion = "1.0"

// Greeting is synthesized per request and never stored.
type Greeting struct {
	Message   string                 `json:"message"`
	Timestamp string                 `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata"`
}
