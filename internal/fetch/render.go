package fetch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"
)

// fetchRendered loads the page in headless Chrome and returns the document
// markup after scripts have run. Some station pages fill the schedule table
// client-side, so a plain GET sees an empty table.
func fetchRendered(ctx context.Context, url string) (string, error) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	opts = append(opts,
		chromedp.Headless,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	var markup string

	err := chromedp.Run(chromeCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`table`, chromedp.ByQuery),
		// Give the page a moment to finish filling the table
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML(`html`, &markup, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}

	return markup, nil
}
