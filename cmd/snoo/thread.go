package main

import (
	"encoding/json"
	"fmt"

	"github.com/snoolib/snoo"
)

// Run executes the thread command.
func (c *ThreadCmd) Run(deps *Dependencies) error {
	thread, err := deps.Posts.FindThread(deps.Ctx, c.PostID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", snoo.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(thread)
}
