package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/histscope/internal/storage"
)

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
	return report(c.globals, c.run(args))
}

func (c *ListCommand) run(args []string) error {
	a, release, err := openApp(c.app, c.globals)
	if err != nil {
		return err
	}
	defer release()

	keyword := c.Keyword
	if keyword == "" && len(args) > 0 {
		keyword = strings.Join(args, " ")
	}

	spec := storage.FilterSpec{
		Keyword:   keyword,
		TimeRange: c.Range,
		Locale:    c.Locale,
		SortBy:    c.Sort,
		SortOrder: c.Order,
	}

	page, err := a.ListHistory(commandContext(c.globals), c.Page, c.PageSize, spec)
	if err != nil {
		return err
	}

	if jsonOutput(c.globals) {
		return writeJSON(page)
	}
	c.printHuman(keyword, page)
	return nil
}

func (c *ListCommand) printHuman(keyword string, page *storage.Page) {
	if len(page.Items) == 0 {
		if keyword != "" {
			fmt.Printf("No history found for %q\n", keyword)
		} else {
			fmt.Println("No history found")
		}
		return
	}

	pages := (page.Total + int64(page.PageSize) - 1) / int64(page.PageSize)
	fmt.Printf("Page %d of %s (%s records)\n\n", page.Page, formatNumber(pages), formatNumber(page.Total))

	first := (page.Page - 1) * page.PageSize
	for i, r := range page.Items {
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%d. %s\n", first+i+1, title)
		fmt.Printf("   %s\n", r.URL)

		meta := time.Unix(r.LastVisitedTime, 0).Local().Format("2006-01-02 15:04")
		meta += fmt.Sprintf(" · %d visits", r.NumVisits)
		if r.Locale != "" {
			meta += " · " + r.Locale
		}
		fmt.Printf("   %s\n", meta)

		if i < len(page.Items)-1 {
			fmt.Println()
		}
	}
}
