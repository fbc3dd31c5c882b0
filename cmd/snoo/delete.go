package main

import (
	"fmt"

	"github.com/snoolib/snoo"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Posts.DeletePost(deps.Ctx, c.PostID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", snoo.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted post %q\n", c.PostID)
	return nil
}
