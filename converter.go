package snoo

// Converter transforms HTML content into Markdown. Post and comment
// bodies are archived in both forms.
type Converter interface {
	Convert(html string) (markdown string, err error)
}
