package accessevent

import (
	"github.com/nishigaki-sys/school-booking-v2/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
