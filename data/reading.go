package data

import (
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// WordsPerMinute is the reading speed used for reading time estimates.
const WordsPerMinute = 225

// CountWords counts the words of the visible text of html. Code blocks
// count as well.
func CountWords(html *goquery.Document) int {
	if html == nil {
		return 0
	}

	return len(strings.Fields(html.Text()))
}

// ReadingMinutes estimates the reading time of words words. Every document
// takes at least a minute.
func ReadingMinutes(words int) int {
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}

	return minutes
}
