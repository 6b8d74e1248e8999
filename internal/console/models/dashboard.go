package models

// DashboardMetrics are the headline counters. MTTD/MTTR are average seconds.
type DashboardMetrics struct {
	TotalCases      int     `json:"totalCases"`
	TotalCasesTrend string  `json:"totalCasesTrend"`
	OpenCases       int     `json:"openCases"`
	ClosedCases     int     `json:"closedCases"`
	MTTD            float64 `json:"mttd"`
	MTTR            float64 `json:"mttr"`
}

type TrendPoint struct {
	Time string  `json:"time"`
	MTTD float64 `json:"mttd"`
	MTTR float64 `json:"mttr"`
}

type AccuracyBucket struct {
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

// DetectionAccuracy splits closed alerts by disposition.
type DetectionAccuracy struct {
	TruePositive   AccuracyBucket `json:"truePositive"`
	FalsePositive  AccuracyBucket `json:"falsePositive"`
	BenignPositive AccuracyBucket `json:"benignPositive"`
}

type Activity struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	User      string `json:"user,omitempty"`
	Timestamp string `json:"timestamp"`
}
