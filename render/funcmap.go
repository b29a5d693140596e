package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/goodsign/monday"

	"github.com/ak0r/zero-theme/data/document"
	"github.com/ak0r/zero-theme/util/dates"
)

// Locale maps a site language such as "de", "de-DE" or "de_DE" onto a
// monday locale. Unknown languages fall back to US English.
func Locale(language string) monday.Locale {
	language = strings.ReplaceAll(strings.TrimSpace(language), "-", "_")
	if language == "" {
		return monday.LocaleEnUS
	}

	locales := monday.ListLocales()
	for _, l := range locales {
		if strings.EqualFold(string(l), language) {
			return l
		}
	}

	for _, l := range locales {
		if strings.HasPrefix(strings.ToLower(string(l)), strings.ToLower(language)+"_") {
			return l
		}
	}

	return monday.LocaleEnUS
}

func makeTemplateFuncmap(language string) template.FuncMap {
	tagSet := NewTagSet()
	locale := Locale(language)

	return template.FuncMap{
		"tagColor": func(tag document.Tag) string {
			return tagSet.HexColor(tag.String())
		},
		"tagDisplay": func(tag document.Tag) template.HTML {
			return template.HTML(fmt.Sprintf("#%s", template.HTMLEscapeString(tag.String())))
		},
		"dateDisplay": func(t time.Time) string {
			return monday.Format(t, "2 January 2006", locale)
		},
		"yearMonthDisplay": func(t time.Time) string {
			return monday.Format(t, "January 2006", locale)
		},
		"isoDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"readingTime": func(minutes int) string {
			return fmt.Sprintf("%d min read", minutes)
		},
		"hasDate": func(t time.Time) bool {
			return !t.IsZero()
		},

		"dict": dict,

		"today":      time.Now,
		"equalMonth": dates.EqualMonth,
	}
}

// dict builds a map from alternating keys and values, for passing several
// values to a nested template.
func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict needs an even number of arguments")
	}

	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is no string", pairs[i])
		}
		m[key] = pairs[i+1]
	}

	return m, nil
}
