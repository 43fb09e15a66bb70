package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Saju/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Saju"
	AppID             = "com.github.tartampluch.go-saju"
	KeyringService    = "com.github.tartampluch.go-saju"
	KeyringUserGemini = "gemini-api-key"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug       = "debug"
	FlagConfig      = "config"
	FlagDate        = "date"
	FlagTime        = "time"
	FlagUnknownTime = "unknown-time"
	FlagGender      = "gender"
	FlagCalendar    = "calendar"
	FlagName        = "name"
	FlagFormat      = "format"
	FlagNoAdvice    = "no-advice"
	FlagVCF         = "vcf"
	FlagYear        = "year"
	FlagICS         = "ics"
	FlagPort        = "port"
	FlagWorkers     = "workers"

	FlagDescDebug       = "Enable debug logging"
	FlagDescConfig      = "Path to a YAML settings file"
	FlagDescDate        = "Birth date (YYYY-MM-DD)"
	FlagDescTime        = "Birth time (HH:MM, 24h)"
	FlagDescUnknownTime = "Birth time is unknown (no hour pillar)"
	FlagDescGender      = "Gender: 남/여 (male/female, m/f)"
	FlagDescCalendar    = "Calendar label: solar or lunar (label only, no conversion)"
	FlagDescName        = "Optional display name"
	FlagDescFormat      = "Output format: json or yaml"
	FlagDescNoAdvice    = "Skip the generated advice block"
	FlagDescVCF         = "vCard file with BDAY and GENDER properties"
	FlagDescYear        = "Calendar year (defaults to the current year)"
	FlagDescICS         = "Print an iCalendar feed instead of the regular output"
	FlagDescPort        = "Port for the feed server"
	FlagDescWorkers     = "Maximum number of charts computed concurrently"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort         = "18081"
	DefaultAdviceModel  = "gemini-2.5-flash"
	DefaultFormat       = FormatJSON
	DefaultBatchWorkers = 4
	DefaultFeedCron     = "@daily"

	FormatJSON = "json"
	FormatYAML = "yaml"

	CalendarSolar = "solar"
	CalendarLunar = "lunar"

	UIDSalt = "go-saju-v1-" // Salt for deterministic UID generation
)

// Accepted gender labels (lowercased before matching).
var (
	GenderMaleLabels   = []string{"남", "남자", "male", "m"}
	GenderFemaleLabels = []string{"여", "여자", "female", "f"}
)

// -----------------------------------------------------------------------------
// Environment Variables
// -----------------------------------------------------------------------------

const (
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvAdviceModel   = "GO_SAJU_ADVICE_MODEL"
	EnvAdviceTimeout = "GO_SAJU_ADVICE_TIMEOUT"
	EnvPort          = "GO_SAJU_PORT"
	EnvBatchWorkers  = "GO_SAJU_BATCH_WORKERS"
	EnvFeedCron      = "GO_SAJU_FEED_CRON"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Saju//Solar Terms//KO"
	ICalCalName = "절기"
	ICalDaeun   = "대운"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gosaju"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"
	PropCategories = "CATEGORIES"
	PropDescr      = "DESCRIPTION"

	VCardBDAY   = "BDAY"
	VCardFN     = "FN"
	VCardN      = "N"
	VCardGender = "GENDER"

	DefaultICalRefresh = 24 * time.Hour

	FormatTermSummary  = "%s (%s)"
	FormatDaeunSummary = "대운 %s (%d세)"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05"
	DateFormatBasicT    = "20060102T150405"
	TimeFormatHM        = "15:04"

	// Years outside this window are rejected at the boundary.
	MinBirthYear = 1800
	MaxBirthYear = 2100

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%d|%s"
	FormatUID       = "%s-%d@%s"

	// Profile hashing: name|birth|salt
	FormatProfileHash = "%s|%s|%s"
	FallbackName      = "이름 없음"

	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	AdviceTimeout       = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 1 * 1024 * 1024 // 1MB
	RouteRoot           = "/"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderUserAgent       = "User-Agent"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrDateParse      = "invalid birth date"
	ErrDateRange      = "birth year out of supported range"
	ErrTimeParse      = "invalid birth time"
	ErrGender         = "unsupported gender label"
	ErrCalendarType   = "unsupported calendar type"
	ErrFormat         = "unsupported output format"
	ErrEncode         = "failed to encode chart"
	ErrSink           = "failed to hand off chart"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrVCardOpen      = "failed to open vCard file"
	ErrIsDirectory    = "path is a directory"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrSettingsRead   = "failed to read settings file"
	ErrSettingsParse  = "failed to parse settings file"
	ErrSettingsValue  = "invalid settings value"
	ErrKeyringRead    = "failed to read API key from keyring"
	ErrKeyringWrite   = "failed to store API key in keyring"
	ErrKeyringDelete  = "failed to delete API key from keyring"
	ErrAPIKeyEmpty    = "API key is empty"
	ErrGeminiClient   = "failed to create Gemini client"
	ErrGeminiCall     = "Gemini generation failed"
	ErrGeminiEmpty    = "Gemini returned no text"
	ErrAdviceParse    = "advice response is not valid JSON"
	ErrAdviceKeys     = "advice response is missing required keys"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortRange      = "server port must be between 1 and 65535"
	ErrCronSchedule   = "invalid feed refresh schedule"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrBatchEmpty     = "no usable birth profiles found"
	ErrFeedBuild      = "failed to build calendar feed"
	ErrYearRange      = "year out of supported range"
	ErrStdinRead      = "failed to read from standard input"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCalcStarted     = "Chart calculation started"
	MsgCalcDone        = "Chart calculation finished"
	MsgAdviceFallback  = "Advice unavailable, using fallback"
	MsgAdviceDone      = "Advice generated"
	MsgAdviceDisabled  = "Advice generator not configured"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping contact without a usable birth date"
	MsgSkippedGender   = "Skipping contact without a usable gender"
	MsgBatchRead       = "Address book read"
	MsgBatchDone       = "Batch calculation finished"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Feed cache updated"
	MsgFeedRefresh     = "Refreshing solar term feed"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgSettingsLoaded  = "Settings loaded"
	MsgKeyFromEnv      = "Using API key from environment"
	MsgKeyFromKeyring  = "Using API key from keyring"
	MsgKeyMissing      = "No API key configured, advice disabled"
	MsgKeyStored       = "API key stored"
	MsgKeyDeleted      = "API key deleted"
	MsgSinkFailed      = "Chart hand-off failed"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgKeyPrompt       = "Enter Gemini API key: "
	MsgCtxCancel       = "Context cancelled, shutting down"
	MsgWorkerStart     = "Feed refresh scheduler started"
	MsgWorkerStop      = "Feed refresh scheduler stopped"
	MsgGeminiRequest   = "Requesting advice from Gemini"
	MsgGeminiResponded = "Gemini responded"
)

// -----------------------------------------------------------------------------
// Translation Keys (i18n)
// -----------------------------------------------------------------------------

// Fixed message IDs. Per-stem, per-element and per-category IDs are built as
// prefix + "." + key (e.g. "career.gap", "health.yearly.wood").
const (
	DefaultLanguage = "ko"
	LocalesDir      = "locales"
	LocalePrefix    = "active."
	LocaleSuffix    = ".json"

	TKeyPersonality      = "personality"
	TKeyPersonalityBasic = "basic"
	TKeyPersonalityStr   = "strength"
	TKeyPersonalityWeak  = "weakness"
	TKeyLabelStrength    = "personality.label.strength"
	TKeyLabelWeakness    = "personality.label.weakness"

	TKeyYinYangBalanced = "yinyang.balanced"
	TKeyYinYangYang     = "yinyang.yang"
	TKeyYinYangYin      = "yinyang.yin"

	TKeyElement         = "element"
	TKeyElementDist     = "element.distribution"
	TKeyElementComplete = "element.complete"
	TKeyElementStrong   = "element.strong"
	TKeyElementMissing  = "element.missing"

	TKeyYearlyOverall     = "yearly.overall"
	TKeySuffixConflicting = "yearly.suffix.conflicting"
	TKeySuffixSupportive  = "yearly.suffix.supportive"

	TKeyLovePrefix = "love.prefix"
	TKeyLoveCharm  = "love.charm"
	TKeyLoveStable = "love.stable"

	TKeyYearlyWealth       = "wealth.yearly"
	TKeyYearlyWealthPrefix = "wealth.yearly.prefix"
	TKeyYearlyHealth       = "health.yearly"
	TKeyYearlyHealthPrefix = "health.yearly.prefix"

	TKeyCareer       = "career"
	TKeyRelationship = "relationship"
	TKeySocial       = "social"
	TKeyWealth       = "wealth"
	TKeyHealth       = "health"

	TKeyDefault  = "default"
	TKeyFallback = "fallback"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyModel     = "model"
	LogKeyYear      = "year"
	LogKeyPillars   = "pillars"
	LogKeySchedule  = "schedule"
	LogKeyTimeout   = "timeout"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total"
	LogKeyFound     = "found"
	LogKeySkipped   = "skipped"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyCommit  = "commit"
	LogKeyBuilt   = "built"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine   = "engine"
	CompAdvice   = "advice"
	CompGemini   = "gemini"
	CompServer   = "server"
	CompWorker   = "worker"
	CompContacts = "contacts"
	CompSettings = "settings"
	CompSecrets  = "secrets"
	CompMain     = "main"
	CompI18n     = "i18n"
)
