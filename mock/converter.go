package mock

import "github.com/snoolib/snoo"

var _ snoo.Converter = (*Converter)(nil)

// Converter is a mock implementation of snoo.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
