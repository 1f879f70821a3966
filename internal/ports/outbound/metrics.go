package outbound

import "time"

// AnalysisMetrics records composition analysis outcomes
type AnalysisMetrics interface {
	ObserveAnalysis(variant string, duration time.Duration, missing, suggestions int)
	ObserveGustatoryScore(score int)
	ObserveUnresolvedNames(count int)
	ObserveDegradedAnalysis(variant string)
}

// CatalogMetrics records catalog cache loads
type CatalogMetrics interface {
	ObserveCatalogLoad(origin string, duration time.Duration, size int, err error)
}
