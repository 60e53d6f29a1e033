package browser

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jmylchreest/xmark/internal/logger"
	"github.com/jmylchreest/xmark/internal/page"
)

// expandShowMoreJS clicks every control whose visible label is a known
// truncation toggle. Returns the number of controls clicked.
const expandShowMoreJS = `(() => {
	const targets = Array.from(document.querySelectorAll(
		'[data-testid="tweet-text-show-more-link"], div[role="button"], span[role="button"], a[role="link"]'
	));
	let clicked = 0;
	for (const el of targets) {
		const text = (el.innerText || '').trim().toLowerCase();
		if (text === 'show more' || text === 'read more' || text === 'see more') {
			el.click();
			clicked++;
		}
	}
	return clicked;
})()`

// articleLinkJS finds a link to the dedicated article view, if any.
const articleLinkJS = `(() => {
	const link = document.querySelector('a[href*="/article/"], a[href*="/i/article/"]');
	return link ? link.href : '';
})()`

// measureImagesJS reports the rendered dimensions of every image on the
// page, keyed by src. naturalWidth is preferred, layout size is the
// fallback for images the decoder has not sized yet.
const measureImagesJS = `(() => {
	const out = {};
	for (const img of document.querySelectorAll('img')) {
		const src = img.getAttribute('src') || '';
		if (!src) continue;
		const w = img.naturalWidth || img.width || 0;
		const h = img.naturalHeight || img.height || 0;
		if (!(src in out) || out[src].width < w) {
			out[src] = { width: w, height: h };
		}
	}
	return out;
})()`

// expandTruncated clicks show-more style controls and gives the page a
// moment to re-render.
func expandTruncated() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var clicked int
		if err := chromedp.Evaluate(expandShowMoreJS, &clicked).Do(ctx); err != nil {
			// Best effort: a failed click sweep never aborts the fetch.
			logger.Debug("expand truncated text failed", "error", err)
			return nil
		}
		if clicked > 0 {
			logger.Debug("expanded truncated text", "clicked", clicked)
			return chromedp.Sleep(500 * time.Millisecond).Do(ctx)
		}
		return nil
	})
}

// articleLink resolves the href of the article-view link into out, leaving
// it empty when the page has none.
func articleLink(out *string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if err := chromedp.Evaluate(articleLinkJS, out).Do(ctx); err != nil {
			logger.Debug("article link lookup failed", "error", err)
			*out = ""
		}
		return nil
	})
}

// scrollToLoad steps down the page to trigger lazy loading, then jumps to
// the bottom and lets the last batch settle.
func scrollToLoad() []chromedp.Action {
	var actions []chromedp.Action
	var y float64
	for i := 0; i < 5; i++ {
		actions = append(actions,
			chromedp.Evaluate(`window.scrollBy(0, 800); window.scrollY`, &y),
			chromedp.Sleep(500*time.Millisecond),
		)
	}
	actions = append(actions,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight); window.scrollY`, &y),
		chromedp.Sleep(time.Second),
	)
	return actions
}

// measureImages captures per-image rendered dimensions into out.
func measureImages(out *map[string]page.Dim) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if err := chromedp.Evaluate(measureImagesJS, out).Do(ctx); err != nil {
			// Dimensions are a filter input, not required page content.
			logger.Debug("image measurement failed", "error", err)
			*out = map[string]page.Dim{}
		}
		return nil
	})
}
