package constants

import "time"

const (
	// OverdueLoanSweepCronSpec runs the overdue-loan sweep daily at 06:00 UTC.
	OverdueLoanSweepCronSpec   = "0 6 * * *"
	OverdueLoanSweepJobTimeout = 2 * time.Minute

	// ShortOverdueLoanSweepCronSpec is used in dev so the sweep is visible quickly.
	ShortOverdueLoanSweepCronSpec = "*/5 * * * *"

	ServerReadHeaderTimeout = 10 * time.Second
	ServerShutdownTimeout   = 15 * time.Second
)
