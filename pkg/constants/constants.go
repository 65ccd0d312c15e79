// Package constants provides shared constants for the business-calculator application.
package constants

// DateTimeLayout is the month format accepted for chart start months and used
// for chart labels.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// ChartMonths is the number of points in the cumulative revenue/cost series
	ChartMonths = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxPercentage is the upper bound for percentage inputs
	MaxPercentage = 100.0

	// TaxRate is the flat tax applied to positive annual net margin
	TaxRate = 0.20
)

// Payment processor fee model. Hardcoded, not configurable.
const (
	// PaymentFeeRate is the percentage fee charged on revenue (2.9%)
	PaymentFeeRate = 0.029

	// PaymentFeePerOrder is the flat fee charged per order
	PaymentFeePerOrder = 0.30
)

// Monthly fixed costs, excluding the caller-supplied marketing budget.
const (
	// PlatformFee is the monthly e-commerce platform subscription
	PlatformFee = 32.0

	// SEOFee is the monthly SEO service cost
	SEOFee = 200.0

	// DomainFee is the monthly amortization of the domain name
	DomainFee = 1.25
)

// Fixed cost line names, in display order.
const (
	FixedCostPlatform  = "Shopify"
	FixedCostSEO       = "SEO"
	FixedCostDomain    = "Domain"
	FixedCostMarketing = "Marketing"
)

// Default business assumptions, used when the configuration omits a value.
const (
	DefaultMonthlyTraffic     = 1000
	DefaultConversionRate     = 2.0
	DefaultAverageBasket      = 80.0
	DefaultInitialCapital     = 10000.0
	DefaultInitialStock       = 3000.0
	DefaultPurchasePriceRatio = 40.0
	DefaultShippingCost       = 6.0
	DefaultMarketingBudget    = 300.0
)

// Display constants
const (
	// CurrencySymbol is appended to formatted currency amounts
	CurrencySymbol = "€"

	// CurrencyDecimals is the number of decimals shown for currency
	CurrencyDecimals = 2

	// PercentDecimals is the number of decimals shown for percentages
	PercentDecimals = 1

	// CountDecimals is the number of decimals shown for order counts
	CountDecimals = 0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultEnvFile is the dotenv file loaded before configuration
	DefaultEnvFile = ".env"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "BUSINESS"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the dashboard
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultReadHeaderTimeoutSeconds bounds how long a client may take to send headers
	DefaultReadHeaderTimeoutSeconds = 5

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds = 15
)
