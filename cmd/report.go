package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/lumen/internal/console"
	"github.com/abhisek/lumen/internal/report"
)

// reportScan shows the newest research report and offers to queue a
// topic from it.
func (e *env) reportScan(ctx context.Context, c *console.Console) error {
	r, err := report.Latest(e.cfg.ReportsDir)
	if errors.Is(err, report.ErrNoReports) {
		c.Println(fmt.Sprintf("No reports found in %s.", e.cfg.ReportsDir))
		return nil
	}
	if err != nil {
		c.Error(err.Error())
		return err
	}

	c.Dim(r.Name)
	c.Println(report.Render(r.Markdown))

	topic, err := c.Prompt("Topic to add to your queue (blank to skip): ")
	if err != nil || topic == "" {
		return err
	}
	if _, err := e.queue.Add(ctx, topic); err != nil {
		c.Error(err.Error())
		return err
	}
	c.Success(fmt.Sprintf("Queued %q.", topic))
	return nil
}
