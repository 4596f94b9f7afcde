package booking

import "github.com/m04kA/SalonBookingService/pkg/dbmetrics"

// Shared executor interfaces so *sql.DB, *dbmetrics.DB and open transactions all fit.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
