package repository

import (
	"github.com/doug-martin/goqu/v9"

	// Postgres dialect registration for goqu.
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

var builder = goqu.Dialect("postgres")

const (
	tblBooks            = "books"
	tblLoans            = "loans"
	tblHolds            = "holds"
	tblSequenceCounters = "sequence_counters"
	tblNotificationJobs = "notification_jobs"
)
