package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits for the transport layer. These cover 5xx/429 responses
// only; connection-level failures propagate to the caller.
const (
	// DefaultRetryMax is the default maximum number of transport retries.
	DefaultRetryMax = 4

	// DefaultRetryWaitMin is the minimum wait between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between transport retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Wait-loop tuning. The wait loop doubles its delay each attempt until it
// reaches the cap.
const (
	// DefaultWaitBaseDelay is the first sleep between status polls.
	DefaultWaitBaseDelay = 3 * time.Second

	// DefaultWaitMaxDelay caps the backoff between status polls.
	DefaultWaitMaxDelay = 30 * time.Second

	// DefaultWaitTimeout bounds a wait-for-status call when the caller
	// does not supply a budget.
	DefaultWaitTimeout = 20 * time.Minute

	// WaitLogEvery bounds progress logging during long waits: one log
	// line per this many poll attempts.
	WaitLogEvery = 5
)

// Catalog cache tuning.
const (
	// DefaultCatalogTTL is how long region/size/image catalogs are cached.
	DefaultCatalogTTL = 1 * time.Hour

	// DefaultCacheMaxSize is the maximum number of entries in the memory cache.
	DefaultCacheMaxSize = 1000

	// DefaultCacheCleanupInterval is the sweep interval for expired entries.
	DefaultCacheCleanupInterval = 1 * time.Minute
)

// HTTP client identity.
const (
	// DefaultUserAgent identifies this client to the API.
	DefaultUserAgent = "ocean-client/1.0"
)

// Pagination limits.
const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 25

	// MaxPageSize is the largest page the API will serve.
	MaxPageSize = 200
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
