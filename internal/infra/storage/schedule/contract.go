package schedule

import "github.com/nishigaki-sys/school-booking-v2/pkg/dbmetrics"

// DBExecutor is re-exported from dbmetrics so callers can wire either the
// raw *sql.DB or the metrics-wrapped variant.
type DBExecutor = dbmetrics.DBExecutor
