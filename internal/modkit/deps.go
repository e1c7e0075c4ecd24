package modkit

import (
	"canteiro/internal/modkit/repokit"
	"canteiro/internal/platform/config"
	"canteiro/internal/platform/logger"
	"canteiro/internal/platform/metrics"
)

// Deps holds core dependencies passed to modules
// PG and Metrics may be nil; modules decide what that means
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	Metrics *metrics.Manager
}
