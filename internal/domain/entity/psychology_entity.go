package entity

import "time"

// Psychology classification values.
const (
	ClassifyNormal     = "normal"
	ClassifyExperiment = "experiment"
	ClassifyEducation  = "education"
	ClassifySociety    = "society"
	ClassifyDevelop    = "develop"
	ClassifyMeasure    = "measure"
	ClassifyStatistics = "statistics"
)

// Psychology is a single knowledge entry.
type Psychology struct {
	ID        int64
	Classify  string
	Knowledge string
	CreatedAt time.Time
	UpdatedAt time.Time
}
