// Package database opens the MySQL connection behind the variant ledger and
// inspects live table schemas against gorm models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Ledger disabled", zap.Error(err))
//	}
//
//	report, err := database.InspectModel(db, ledger.Record{})
package database
