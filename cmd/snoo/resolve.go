package main

import (
	"encoding/json"
	"fmt"

	"github.com/snoolib/snoo"
)

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")

	for _, url := range c.URLs {
		ref, err := snoo.Resolve(url)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", snoo.ErrorMessage(err))
			return err
		}
		if err := enc.Encode(ref); err != nil {
			return err
		}
	}

	return nil
}
