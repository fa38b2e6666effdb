// backend/src/models/report.go
package models

import "time"

// Report is one processed upload kept in the report store.
type Report struct {
	ID        string            `json:"id"`
	Filename  string            `json:"filename"`
	Industry  string            `json:"industry"`
	Language  string            `json:"language"`
	CreatedAt time.Time         `json:"created_at"`
	Summary   *FinancialSummary `json:"summary"`
	Analysis  *AnalysisResult   `json:"analysis"`
}

// ReportListItem is the report history view.
type ReportListItem struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Industry    string    `json:"industry"`
	CreatedAt   time.Time `json:"created_at"`
	HealthScore int       `json:"health_score"`
	Status      string    `json:"status"`
}
