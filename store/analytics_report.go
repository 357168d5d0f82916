package store

// AnalyticsReport is a persisted performance analysis. WeakConcepts is a
// JSON array of strings; FullAnalysis keeps the complete model answer so a
// report can be re-rendered without another provider call.
type AnalyticsReport struct {
	ID                int32
	UID               string
	StudentID         string
	StudentName       string
	SessionID         string
	PerformanceStatus string
	RiskLevel         string
	WeakConcepts      string
	RecommendedAction string
	FullAnalysis      string
	CreatedTs         int64
}

type FindAnalyticsReport struct {
	ID        *int32
	UID       *string
	StudentID *string
	Limit     *int
}

type DeleteAnalyticsReport struct {
	ID int32
}
