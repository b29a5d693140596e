package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ak0r/zero-theme/data/document"
	"github.com/ak0r/zero-theme/images"
	"github.com/ak0r/zero-theme/util/slices"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseDate(v interface{}) (time.Time, bool, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return d, true, nil
	case string:
		d = strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, d, time.Local); err == nil {
				return t, true, nil
			}
		}
		return time.Time{}, false, fmt.Errorf("could not parse date '%s'", d)
	}

	return time.Time{}, false, fmt.Errorf("unsupported date value %v", v)
}

func stringField(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	return ""
}

func boolField(m map[string]interface{}, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func intField(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	}

	return 0
}

// imageField returns the cover image reference. Obsidian writes the
// property link [[cover.jpg]] as a nested list, its first element is used.
func imageField(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case []interface{}:
		for len(v) > 0 {
			switch first := v[0].(type) {
			case string:
				return strings.TrimSpace(first)
			case []interface{}:
				v = first
			default:
				return ""
			}
		}
	}

	return ""
}

func populateTags(doc *document.Document, v interface{}) {
	switch tags := v.(type) {
	case string:
		for _, raw := range strings.Split(tags, ",") {
			if name := strings.TrimSpace(raw); name != "" {
				doc.AddTag(document.Tag{Raw: name})
			}
		}
	case []interface{}:
		rawTags, remaining := slices.Partition[string](tags)
		for _, rawTag := range rawTags {
			doc.AddTag(document.Tag{Raw: rawTag})
		}

		for _, r := range remaining {
			m, ok := r.(map[interface{}]interface{})
			if !ok {
				continue
			}

			for k, v := range m {
				category, ok := k.(string)
				if !ok {
					continue
				}

				rawItems, ok := v.([]interface{})
				if !ok {
					continue
				}

				rawTags, _ = slices.Partition[string](rawItems)
				for _, rawTag := range rawTags {
					doc.AddTag(document.Tag{
						Raw:      rawTag,
						Category: category,
					})
				}
			}
		}
	}
}

// populateFromYAMLMetaData copies the frontmatter fields m into doc. A
// missing title or date is derived later, an unparsable date is an error.
func populateFromYAMLMetaData(doc *document.Document, m map[string]interface{}, index *images.Index) error {
	doc.HasFrontMatter = len(m) > 0

	populateTags(doc, m["tags"])

	doc.Title = stringField(m, "title")
	doc.Description = stringField(m, "description")
	doc.Author = stringField(m, "author")
	doc.Category = stringField(m, "category")
	doc.Series = stringField(m, "series")
	doc.Version = stringField(m, "version")
	doc.ProjectURL = stringField(m, "projectUrl")
	doc.RepositoryURL = stringField(m, "repositoryUrl")
	doc.Status = stringField(m, "status")
	doc.ImageAlt = stringField(m, "imageAlt")

	doc.Draft = boolField(m, "draft")
	doc.Featured = boolField(m, "featured")
	doc.NoIndex = boolField(m, "noIndex")
	doc.HideTOC = boolField(m, "hideTOC")
	doc.HideCoverImage = boolField(m, "hideCoverImage")

	doc.SeriesOrder = intField(m, "seriesOrder")
	doc.Order = intField(m, "order")

	var err error

	guidProvided := false
	if guidStr, ok := m["guid"].(string); ok {
		doc.GUID, err = uuid.Parse(guidStr)
		if err == nil {
			guidProvided = true
		}
	}

	if !guidProvided {
		doc.GUID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(doc.VaultPath))
	}

	date, ok, err := parseDate(m["date"])
	if err != nil {
		return fmt.Errorf("field 'date': %w", err)
	}
	if ok {
		doc.Date = date
	}

	lastModified, ok, err := parseDate(m["lastModified"])
	if err != nil {
		return fmt.Errorf("field 'lastModified': %w", err)
	}
	if ok {
		doc.LastModified = lastModified
	}

	if raw := imageField(m, "image"); raw != "" && index != nil {
		if resolved, ok := resolveCover(doc, raw, index); ok {
			doc.Image = &resolved
		}
	}

	return nil
}

// resolveCover resolves the cover image reference raw of doc. Relative
// references are placed the way image references of the body are.
func resolveCover(doc *document.Document, raw string, index *images.Index) (images.ResolvedImage, bool) {
	resolved := images.ResolveImagePath(raw, doc.Classification)
	if strings.HasPrefix(resolved, "./") {
		return index.Locate(doc.DocumentDirectory(), resolved)
	}

	return index.Resolve(resolved)
}
