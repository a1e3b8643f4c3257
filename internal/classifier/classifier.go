package classifier

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"TraderSentiment/internal/model"
)

const (
	ColDate           = "date"
	ColValue          = "value"
	ColClassification = "classification"
)

// Bands applies to labels that name neither regime.
var Bands = struct {
	FearBelow  float64
	GreedAbove float64
}{45, 55}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// Stats counts what happened to the rows of one sentiment table.
type Stats struct {
	Rows      int
	NoLabel   int
	ByClass   map[model.SentimentClass]int
	FirstDate time.Time
	LastDate  time.Time
}

// NormalizeLabel trims and title-cases a raw classification. Every run of
// letters is cased as its own word, so "extreme_fear" becomes "Extreme_Fear".
func NormalizeLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	title := cases.Title(language.Und)
	var b strings.Builder
	b.Grow(len(raw))
	start := -1
	for i, r := range raw {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(title.String(raw[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(title.String(raw[start:]))
	}
	return b.String()
}

// ClassOf maps a normalized label and index value to a regime.
// Keywords win over the numeric bands; a NaN value falls through to Neutral.
func ClassOf(label string, value float64) model.SentimentClass {
	switch {
	case strings.Contains(label, "Fear"):
		return model.Fear
	case strings.Contains(label, "Greed"):
		return model.Greed
	case value < Bands.FearBelow:
		return model.Fear
	case value > Bands.GreedAbove:
		return model.Greed
	default:
		return model.Neutral
	}
}

// ParseDay parses a sentiment date and truncates it to UTC midnight.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", model.ErrInvalidDate, s)
}

// Classify turns one raw row into a record. ok is false when the label is
// missing, in which case the row is dropped without error.
func Classify(raw model.RawSentiment) (rec model.SentimentRecord, ok bool, err error) {
	label := NormalizeLabel(raw.Classification)
	if label == "" {
		return model.SentimentRecord{}, false, nil
	}
	day, err := ParseDay(raw.Date)
	if err != nil {
		return model.SentimentRecord{}, false, fmt.Errorf("row %d: %w", raw.Row, err)
	}
	value, perr := strconv.ParseFloat(strings.TrimSpace(raw.Value), 64)
	if perr != nil {
		value = math.NaN()
	}
	return model.SentimentRecord{
		Date:     day,
		RawLabel: raw.Classification,
		Label:    label,
		Value:    value,
		Class:    ClassOf(label, value),
	}, true, nil
}

// ClassifyTable classifies every row of a sentiment table, preserving order.
func ClassifyTable(t *model.RawTable) ([]model.SentimentRecord, Stats, error) {
	stats := Stats{ByClass: make(map[model.SentimentClass]int)}
	idx, err := t.Require(ColDate, ColValue, ColClassification)
	if err != nil {
		return nil, stats, err
	}

	records := make([]model.SentimentRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		stats.Rows++
		rec, ok, err := Classify(model.RawSentiment{
			Row:            i + 1,
			Date:           model.Cell(row, idx[ColDate]),
			Value:          model.Cell(row, idx[ColValue]),
			Classification: model.Cell(row, idx[ColClassification]),
		})
		if err != nil {
			return nil, stats, fmt.Errorf("%s: %w", t.Source, err)
		}
		if !ok {
			stats.NoLabel++
			continue
		}
		stats.ByClass[rec.Class]++
		if stats.FirstDate.IsZero() || rec.Date.Before(stats.FirstDate) {
			stats.FirstDate = rec.Date
		}
		if rec.Date.After(stats.LastDate) {
			stats.LastDate = rec.Date
		}
		records = append(records, rec)
	}
	return records, stats, nil
}
