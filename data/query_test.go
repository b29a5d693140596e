package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ak0r/zero-theme/data/document"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func newDoc(title string, date time.Time, tags ...string) *document.Document {
	doc := &document.Document{Title: title, Date: date}
	for _, tag := range tags {
		doc.AddTag(document.Tag{Raw: tag})
	}

	return doc
}

func titles(docs []*document.Document) []string {
	var result []string
	for _, doc := range docs {
		result = append(result, doc.Title)
	}

	return result
}

func TestSortAndFilter(t *testing.T) {
	t.Parallel()

	a := newDoc("a", day(1))
	b := newDoc("b", day(3))
	c := newDoc("c", day(2))
	c.Draft = true
	b.Order = 2
	a.Order = 1
	c.Order = -1

	docs := []*document.Document{a, b, c}

	assert.Equal(t, []string{"b", "c", "a"}, titles(SortByDate(docs)))
	assert.Equal(t, []string{"c", "a", "b"}, titles(SortByOrder(docs)))
	assert.Equal(t, []string{"a", "b"}, titles(FilterDrafts(docs)))
	assert.Equal(t, []string{"a", "b", "c"}, titles(docs), "input order is kept")
}

func TestGroupByYear(t *testing.T) {
	t.Parallel()

	old := newDoc("old", time.Date(2022, time.May, 1, 0, 0, 0, 0, time.UTC))
	docs := []*document.Document{newDoc("x", day(1)), old, newDoc("y", day(5))}

	groups := GroupByYear(docs)
	require.Len(t, groups, 2)
	assert.Equal(t, 2024, groups[0].Year)
	assert.Equal(t, []string{"y", "x"}, titles(groups[0].Documents))
	assert.Equal(t, 2022, groups[1].Year)
}

func TestTags(t *testing.T) {
	t.Parallel()

	docs := []*document.Document{
		newDoc("a", day(1), "Go", "web"),
		newDoc("b", day(2), "go"),
		newDoc("c", day(3), "rust"),
	}

	var names []string
	for _, tag := range UniqueTags(docs) {
		names = append(names, tag.Normalize())
	}
	assert.Equal(t, []string{"go", "rust", "web"}, names)

	counts := TagCounts(docs)
	require.Len(t, counts, 3)
	assert.Equal(t, 2, counts[0].Count)
	assert.Equal(t, []string{"a", "b"}, titles(ByTag(docs, "#GO")))
}

func TestAdjacent(t *testing.T) {
	t.Parallel()

	a, b, c := newDoc("a", day(1)), newDoc("b", day(2)), newDoc("c", day(3))
	docs := []*document.Document{a, b, c}

	prev, next := Adjacent(docs, b)
	assert.Equal(t, a, prev)
	assert.Equal(t, c, next)

	prev, next = Adjacent(docs, a)
	assert.Nil(t, prev)
	assert.Equal(t, b, next)

	prev, next = Adjacent(docs, newDoc("z", day(0)))
	assert.Nil(t, prev)
	assert.Nil(t, next)
}

func TestSeries(t *testing.T) {
	t.Parallel()

	part2 := newDoc("part 2", day(10))
	part2.Series, part2.SeriesOrder = "intro", 2
	part1 := newDoc("part 1", day(1))
	part1.Series, part1.SeriesOrder = "intro", 1
	lone := newDoc("lone", day(20))
	lone.Series = "solo"
	other1 := newDoc("other 1", day(2))
	other1.Series = "other"
	other2 := newDoc("other 2", day(3))
	other2.Series = "other"

	docs := []*document.Document{part2, lone, part1, other1, other2}

	assert.Equal(t, []string{"part 1", "part 2"}, titles(SeriesEntries(docs, "intro")))

	all := AllSeries(docs)
	require.Len(t, all, 2)
	assert.Equal(t, "intro", all[0].Name)
	assert.Equal(t, "other", all[1].Name)

	latest, ok := LatestSeries(docs)
	require.True(t, ok)
	assert.Equal(t, "intro", latest.Name)

	prev, next := AdjacentInSeries(docs, part1)
	assert.Nil(t, prev)
	assert.Equal(t, part2, next)

	prev, next = AdjacentInSeries(docs, newDoc("none", day(0)))
	assert.Nil(t, prev)
	assert.Nil(t, next)

	_, ok = LatestSeries([]*document.Document{lone})
	assert.False(t, ok)
}

func TestRelated(t *testing.T) {
	t.Parallel()

	current := newDoc("current", day(0), "go", "web", "cli")
	two := newDoc("two", day(1), "go", "web")
	oneOld := newDoc("one old", day(2), "cli")
	oneNew := newDoc("one new", day(5), "go")
	none := newDoc("none", day(9), "rust")

	docs := []*document.Document{current, none, oneOld, two, oneNew}

	assert.Equal(t, []string{"two", "one new", "one old"}, titles(Related(docs, current, 3)))
	assert.Equal(t, []string{"two"}, titles(Related(docs, current, 1)))
	assert.Empty(t, Related(docs, newDoc("untagged", day(0)), 3))
}

func TestSearch(t *testing.T) {
	t.Parallel()

	a := newDoc("Getting Started", day(1))
	b := newDoc("Other", day(2))
	b.Description = "how to get STARTED quickly"

	assert.Equal(t, []string{"Getting Started", "Other"}, titles(Search([]*document.Document{a, b}, "started")))
	assert.Empty(t, Search([]*document.Document{a, b}, "missing"))
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	var docs []*document.Document
	for i := 0; i < 5; i++ {
		docs = append(docs, newDoc(string(rune('a'+i)), day(i)))
	}

	tests := []struct {
		page    int
		current int
		titles  []string
		prev    bool
		next    bool
	}{
		{1, 1, []string{"a", "b"}, false, true},
		{2, 2, []string{"c", "d"}, true, true},
		{3, 3, []string{"e"}, true, false},
		{9, 3, []string{"e"}, true, false},
		{0, 1, []string{"a", "b"}, false, true},
	}

	for _, tt := range tests {
		p := Paginate(docs, tt.page, 2)
		assert.Equal(t, tt.current, p.CurrentPage, "page %d", tt.page)
		assert.Equal(t, tt.titles, titles(p.Documents), "page %d", tt.page)
		assert.Equal(t, tt.prev, p.HasPrev, "page %d", tt.page)
		assert.Equal(t, tt.next, p.HasNext, "page %d", tt.page)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, 5, p.TotalEntries)
	}

	empty := Paginate(nil, 4, 10)
	assert.Equal(t, 1, empty.CurrentPage)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Empty(t, empty.Documents)
	assert.False(t, empty.HasNext)
}

func TestReadingMinutes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, ReadingMinutes(0))
	assert.Equal(t, 1, ReadingMinutes(225))
	assert.Equal(t, 2, ReadingMinutes(226))
}
