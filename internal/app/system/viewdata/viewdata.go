// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/dalemusser/visitorstats/internal/app/system/htmlsanitize"
)

// DefaultSiteName is used when no layout title has been installed.
const DefaultSiteName = "访客统计"

// AssetsPrefix is the URL prefix the embedded CSS and JS are served under.
const AssetsPrefix = "/assets"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title"),
//	}
type BaseVM struct {
	// Site context (from the layout document)
	SiteName   string
	FooterHTML template.HTML

	// Page context
	Title        string
	CurrentPath  string
	AssetsPrefix string
}

var (
	mu         sync.RWMutex
	siteName   = DefaultSiteName
	footerHTML template.HTML
)

// Init sets the site name and footer shown on every page.
// Call this once at startup from bootstrap after the layout is loaded.
// The footer may carry inline markup; it is sanitized here.
func Init(name, footer string) {
	mu.Lock()
	defer mu.Unlock()
	if name != "" {
		siteName = name
	} else {
		siteName = DefaultSiteName
	}
	footerHTML = htmlsanitize.Label(footer)
}

// SiteName returns the installed site name.
func SiteName() string {
	mu.RLock()
	defer mu.RUnlock()
	return siteName
}

// NewBaseVM creates a fully populated BaseVM for a page.
func NewBaseVM(r *http.Request, title string) BaseVM {
	mu.RLock()
	defer mu.RUnlock()
	return BaseVM{
		SiteName:     siteName,
		FooterHTML:   footerHTML,
		Title:        title,
		CurrentPath:  r.URL.Path,
		AssetsPrefix: AssetsPrefix,
	}
}

// New creates a BaseVM titled with the site name.
func New(r *http.Request) BaseVM {
	return NewBaseVM(r, SiteName())
}
