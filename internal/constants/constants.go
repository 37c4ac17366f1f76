// Package constants defines application-wide constants and the static genre catalog.
package constants

const (
	AppName    = "filmyfim"
	AppVersion = "1.0.0"

	// Default configuration values
	DefaultPort           = "8000"
	DefaultLogLevel       = "info"
	DefaultTargetLanguage = "Persian"
	DefaultLLMProvider    = "groq"
	DefaultGroqModel      = "mixtral-8x7b-32768"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultGeminiModel    = "gemini-1.5-flash"
	DefaultOllamaModel    = "llama3"

	// TMDB endpoints
	TMDBBaseURL      = "https://api.themoviedb.org/3"
	TMDBImageBaseURL = "https://image.tmdb.org/t/p/w500"
	TMDBLanguage     = "en-US"

	// TMDB allows roughly 40 requests per second per IP
	TMDBRateLimit = 40
	TMDBRateBurst = 20
)

// Pipeline sizes and quality thresholds
const (
	RecommendationCount  = 6
	MaxCandidates        = 6
	FeaturedCount        = 3
	DefaultMaxBackfill   = 12
	DiscoverMinVoteCount = 1000
	DiscoverMinRating    = 7.0
	DiscoverMaxPage      = 3
	DiscoverPoolSize     = 10
	DiscoverSortBy       = "popularity.desc"
)

// Placeholder texts used when no metadata could be resolved
const (
	NoInformation    = "No information available"
	NoDescription    = "No description available"
	ErrorFetchDetail = "Error fetching movie details"
)
