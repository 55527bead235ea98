package fetch

import (
	"net/url"
	"strings"
)

// Platform names a job board whose markup we know how to read.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

// boardProfile describes where a board puts the posting body and which
// extra elements wrap its application flow.
type boardProfile struct {
	hosts   []string
	content []string
	noise   []string
}

var boards = map[Platform]boardProfile{
	PlatformGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section"},
	},
	PlatformLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".posting-apply"},
	},
	PlatformWorkday: {
		hosts:   []string{"myworkdayjobs.com", "workday.com"},
		content: []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	PlatformAshby: {
		hosts:   []string{"ashbyhq.com"},
		content: []string{"[class*='descriptionText']", ".ashby-job-posting-right-pane"},
		noise:   []string{".ashby-application-form-container"},
	},
}

// sharedNoise is stripped from every page: apply forms, EEO and legal
// blocks, share widgets, cookie banners.
var sharedNoise = []string{
	"form", "#application-form", ".application-form", ".apply-button-container", "[data-testid='application-form']",
	".voluntary-disclosure", ".eeo-statement", ".eeo-section", ".legal-disclosure", ".self-identification",
	".social-share", ".share-buttons",
	".cookie-consent", ".gdpr-notice",
}

// DetectPlatform maps a posting URL to its job board. Only the host is
// inspected, and it must equal a known board domain or be a subdomain of one.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for platform, profile := range boards {
		for _, domain := range profile.hosts {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return platform
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors lists the posting body selectors for a board,
// most specific first.
func PlatformContentSelectors(platform Platform) []string {
	profile, ok := boards[platform]
	if !ok {
		return JobPostingSelectors()
	}
	return append([]string(nil), profile.content...)
}

// PlatformNoiseSelectors lists the elements removed before text extraction.
func PlatformNoiseSelectors(platform Platform) []string {
	selectors := append([]string(nil), sharedNoise...)
	return append(selectors, boards[platform].noise...)
}
