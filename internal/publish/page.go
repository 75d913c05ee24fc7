package publish

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"mindit-cli/internal/model"
)

var pageMarkdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		// Raw HTML in node names stays escaped: no html.WithUnsafe().
		html.WithHardWraps(),
	),
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
ul { padding-left: 1.25rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Page renders n as a standalone HTML document built from its Markdown outline.
func Page(n *model.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var body bytes.Buffer
	if err := pageMarkdown.Convert([]byte(MarkdownOutline(n)), &body); err != nil {
		return "", err
	}
	var out bytes.Buffer
	err := pageTemplate.Execute(&out, struct {
		Title string
		// goldmark output is trusted only because raw HTML is disabled above.
		Body template.HTML
	}{
		Title: n.Name,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
