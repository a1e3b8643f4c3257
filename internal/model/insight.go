package model

// RankTest is the outcome of a Mann-Whitney comparison of Fear days against Greed days.
type RankTest struct {
	Metric      string
	FearN       int
	GreedN      int
	FearMean    float64
	GreedMean   float64
	FearMedian  float64
	GreedMedian float64
	U           float64 // statistic of the Fear sample
	PValue      float64
	Method      string
	Significant bool
}

// KeyInsight is one row of the Fear vs Greed comparison table.
type KeyInsight struct {
	Dimension    string
	Fear         float64
	Greed        float64
	Difference   string
	PValue       float64
	Significance string
}
