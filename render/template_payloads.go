package render

import (
	"time"

	"github.com/ak0r/zero-theme/data/document"
	"github.com/ak0r/zero-theme/util/dates"
)

// MonthGroup is a run of documents dated in the same month.
type MonthGroup struct {
	Month     time.Time
	Documents []*document.Document
}

// GroupByMonth splits date-ordered documents into runs of the same month,
// keeping their order.
func GroupByMonth(documents []*document.Document) []MonthGroup {
	var groups []MonthGroup

	for _, doc := range documents {
		if n := len(groups); n > 0 && dates.EqualMonth(groups[n-1].Month, doc.Date) {
			groups[n-1].Documents = append(groups[n-1].Documents, doc)
			continue
		}

		groups = append(groups, MonthGroup{
			Month:     dates.FirstDayOfMonth(doc.Date),
			Documents: []*document.Document{doc},
		})
	}

	return groups
}
