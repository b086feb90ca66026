package parser

import (
	"github.com/insightdelivered/card-statement-extractor/internal/config"
	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

// holderRange covers records[first..last] (inclusive) for one cardholder.
type holderRange struct {
	name  string
	first int
	last  int
}

// holderRanges finds the cardholder ranges and the positions of the marker
// records. With leading markers a name applies to the records after it, up to
// the next marker; with trailing markers it applies to the records since the
// previous marker.
func holderRanges(records []models.Transaction, pos config.CardholderPosition) ([]holderRange, map[int]bool) {
	var ranges []holderRange
	markers := make(map[int]bool)

	if pos == config.CardholderTrailing {
		first := 0
		for i, r := range records {
			if !r.IsCardholderMarker() {
				continue
			}
			markers[i] = true
			if first < i {
				ranges = append(ranges, holderRange{name: r.Cardholder, first: first, last: i - 1})
			}
			first = i + 1
		}
		return ranges, markers
	}

	open := -1
	for i, r := range records {
		if !r.IsCardholderMarker() {
			continue
		}
		markers[i] = true
		if open >= 0 {
			ranges[open].last = i - 1
		}
		ranges = append(ranges, holderRange{name: r.Cardholder, first: i + 1, last: len(records) - 1})
		open = len(ranges) - 1
	}
	return ranges, markers
}

// attributeCardholders stamps each record with its cardholder and drops the
// marker records. records is not modified.
func attributeCardholders(records []models.Transaction, pos config.CardholderPosition) []models.Transaction {
	ranges, markers := holderRanges(records, pos)

	owner := make([]string, len(records))
	for _, rg := range ranges {
		for i := max(rg.first, 0); i <= rg.last && i < len(records); i++ {
			owner[i] = rg.name
		}
	}

	out := make([]models.Transaction, 0, len(records)-len(markers))
	for i, r := range records {
		if markers[i] {
			continue
		}
		r.Cardholder = owner[i]
		out = append(out, r)
	}
	return out
}
