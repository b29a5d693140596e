package render

import (
	"fmt"
	"html/template"

	"github.com/ak0r/zero-theme/data/document"
	"github.com/ak0r/zero-theme/res"
)

// Filenamer decides the URLs of the generated pages.
type Filenamer interface {
	EntryURL(doc *document.Document) string
	TagURL(tag document.Tag) string
	ListURL(page int) string
}

func ReadTemplates(f Filenamer, language string) (*template.Template, error) {
	funcMap := makeTemplateFuncmap(language)

	funcMap["entryURL"] = func(doc *document.Document) template.URL {
		return template.URL(f.EntryURL(doc))
	}

	funcMap["tagURL"] = func(tag document.Tag) template.URL {
		return template.URL(f.TagURL(tag))
	}

	funcMap["listURL"] = func(page int) template.URL {
		return template.URL(f.ListURL(page))
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(res.Templates, "templates/*")
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return templates, nil
}
