package domain

// Report is a rendering-neutral view of a snapshot for the console reporters.
type Report struct {
	Title    string
	Period   ReportPeriod
	Sections []ReportSection
	Total    string
	Goal     string
	Currency string
}

// ReportPeriod describes the week window the report covers
type ReportPeriod struct {
	Year        int
	StartWeek   int
	EndWeek     int
	CurrentWeek int
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]string
	Details []ReportDetail
}

// ReportDetail represents one row within a section
type ReportDetail struct {
	Name        string
	Value       string
	Unit        string
	Description string
}
