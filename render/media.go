package render

import (
	"bytes"
	"fmt"
	"html"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ak0r/zero-theme/content"
	"github.com/ak0r/zero-theme/data/document"
)

var mediaTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".3gp":  "video/3gpp",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".ogv":  "video/ogg",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".pdf":  "application/pdf",
}

// EmplaceMedia replaces images whose source is an audio, video or PDF
// attachment with the matching player or viewer element.
func EmplaceMedia(doc *document.Document) {
	doc.HTML.Find("img").Each(func(i int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))

		mime, ok := mediaTypes[strings.ToLower(path.Ext(src))]
		if !ok {
			return
		}

		url := html.EscapeString(MediaURL(doc, src))
		caption := s.AttrOr("data-caption", "")

		var buf bytes.Buffer

		_, _ = buf.WriteString("<figure class=\"media\">")

		switch {
		case strings.HasPrefix(mime, "audio/"):
			_, _ = buf.WriteString("<audio controls preload=\"metadata\">")
			_, _ = buf.WriteString(fmt.Sprintf("<source src=\"%s\" type=\"%s\">", url, mime))
			_, _ = buf.WriteString("</audio>")
		case strings.HasPrefix(mime, "video/"):
			_, _ = buf.WriteString("<video controls preload=\"metadata\">")
			_, _ = buf.WriteString(fmt.Sprintf("<source src=\"%s\" type=\"%s\">", url, mime))
			_, _ = buf.WriteString("</video>")
		default:
			_, _ = buf.WriteString(fmt.Sprintf("<iframe class=\"pdf\" src=\"%s\" loading=\"lazy\"></iframe>", url))
		}

		if caption != "" {
			_, _ = buf.WriteString(fmt.Sprintf("<figcaption>%s</figcaption>", html.EscapeString(caption)))
		}
		_, _ = buf.WriteString("</figure>")

		s.ReplaceWithHtml(buf.String())
	})
}

// MediaURL maps the attachment reference src of doc onto the URL the
// attachment sync publishes it under. Entry attachments of folder-based
// documents land next to the entry; the attachments of single-file
// documents and pages keep their attachments directory.
func MediaURL(doc *document.Document, src string) string {
	if isAbsoluteReference(src) {
		return src
	}

	p := strings.TrimPrefix(src, "./")

	if doc.Classification.IsFolderBased {
		p = strings.TrimPrefix(p, content.AttachmentsDirectory+"/")
	} else if !strings.HasPrefix(p, content.AttachmentsDirectory+"/") {
		p = content.AttachmentsDirectory + "/" + p
	}

	return "/" + path.Join(doc.DocumentDirectory(), p)
}
