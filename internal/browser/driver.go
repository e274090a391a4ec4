// Package browser wraps a Chrome session behind a small driver
// interface so the application flow can be exercised against a fake in
// tests.
package browser

import "context"

// Driver is the browser surface the application flow depends on. All
// operations honor context cancellation.
type Driver interface {
	// Navigate loads a URL and waits for the document body.
	Navigate(ctx context.Context, url string) error

	// CurrentURL reports the location after any redirects.
	CurrentURL(ctx context.Context) (string, error)

	// Reload re-navigates to the current location.
	Reload(ctx context.Context) error

	// WaitVisible blocks until the selector matches a visible node.
	WaitVisible(ctx context.Context, selector string) error

	// Exists reports whether the selector matches any node right now.
	Exists(ctx context.Context, selector string) (bool, error)

	// Click clicks the first visible node matching the selector.
	Click(ctx context.Context, selector string) error

	// Text returns the inner text of the first matching node.
	Text(ctx context.Context, selector string) (string, error)

	// HTML returns the outer HTML of the first matching node.
	HTML(ctx context.Context, selector string) (string, error)

	// SendKeys types a value into the first matching node.
	SendKeys(ctx context.Context, selector, value string) error

	// Clear empties the value of the first matching input.
	Clear(ctx context.Context, selector string) error

	// SetUpload attaches a local file to a file input.
	SetUpload(ctx context.Context, selector, path string) error

	// Evaluate runs a JavaScript expression and decodes its JSON result
	// into out.
	Evaluate(ctx context.Context, expression string, out any) error

	// ScrollSlow scrolls the page down in human-paced steps so lazy
	// content loads.
	ScrollSlow(ctx context.Context) error

	// Close tears the browser session down.
	Close() error
}
