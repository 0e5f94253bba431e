package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/tagpages/internal/build"
	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
	"git.home.luguber.info/inful/tagpages/internal/plugin/tags"
	"git.home.luguber.info/inful/tagpages/internal/site"
)

// TagsCmd implements the 'tags' command.
type TagsCmd struct {
	JSON       bool   `name:"json" help:"Print the index as JSON"`
	Collection string `help:"Only show tags of this collection"`
}

func (c *TagsCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	svc := build.NewBuildService().WithLogger(g.logger())
	result, err := svc.Run(context.Background(), build.BuildRequest{
		Config:  cfg,
		Options: build.BuildOptions{DryRun: true},
	})
	if err != nil {
		return err
	}

	summaries, err := c.summarize(result.Site)
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(g.stdout(), summaries)
	}
	return writeTable(g.stdout(), summaries)
}

func (c *TagsCmd) summarize(s *site.Site) ([]tags.Summary, error) {
	if c.Collection == "" {
		return tags.Summarize(s.Metadata.Tags, tags.GeneratedPages(s.Files)), nil
	}
	coll, ok := s.Metadata.Collection(c.Collection)
	if !ok {
		return nil, derrors.NotFoundError("collection not found").
			WithContext("collection", c.Collection).
			Build()
	}
	return tags.Summarize(coll.Tags, coll.Pages), nil
}

func writeJSON(w io.Writer, summaries []tags.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}

func writeTable(w io.Writer, summaries []tags.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TAG\tCOUNT\tPAGES")
	for _, s := range summaries {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Tag, s.Count, strings.Join(s.Pages, ", "))
	}
	return tw.Flush()
}
