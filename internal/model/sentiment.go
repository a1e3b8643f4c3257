package model

import "time"

// SentimentClass is the regime a calendar day is assigned to.
type SentimentClass string

const (
	Fear    SentimentClass = "Fear"
	Greed   SentimentClass = "Greed"
	Neutral SentimentClass = "Neutral"
)

// Classes lists the regimes that survive alignment, in reporting order.
var Classes = []SentimentClass{Fear, Greed}

// RawSentiment is one row of the sentiment index before classification.
type RawSentiment struct {
	Row            int
	Date           string
	Value          string
	Classification string
}

// SentimentRecord is a classified day of the sentiment index.
type SentimentRecord struct {
	Date     time.Time // UTC midnight
	RawLabel string
	Label    string  // trimmed and title-cased
	Value    float64 // NaN when the index value is not numeric
	Class    SentimentClass
}
