package utils

const (
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*pageSize far from overflow.
	MaxPage = 1_000_000

	DefaultOverdueLoanDays = 30
)
