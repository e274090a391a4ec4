package linkedin

// Navigation targets and URL markers.
const (
	feedURL    = "https://www.linkedin.com/feed"
	loginURL   = "https://www.linkedin.com/login"
	searchBase = "https://www.linkedin.com/jobs/search/"

	feedMarker       = "/feed"
	checkpointMarker = "/checkpoint/challenge"
	premiumMarker    = "/premium"
)

// CSS selectors for the login and apply flows. Kept in one place since
// they break together whenever the site markup changes.
const (
	selUsername     = "#username"
	selPassword     = "#password"
	selLoginSubmit  = `button[type="submit"]`
	selEasyApply    = "button.jobs-apply-button"
	selSeeMore      = `button[aria-label="Click to see more description"]`
	selDescription  = ".jobs-description-content__text"
	selPrimaryBtn   = ".artdeco-button--primary"
	selInlineError  = ".artdeco-inline-feedback--error"
	selModalDismiss = ".artdeco-modal__dismiss"
	selModalConfirm = ".artdeco-modal__confirm-dialog-btn"
	selFollowLabel  = ".jobs-easy-apply-content footer label"
	selResultsList  = ".jobs-search-results-list"
	selNoResults    = ".jobs-search-two-pane__no-results-banner--expand"
)
