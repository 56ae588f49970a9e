package site

// SiteConfig is the complete configuration record handed to the static-site generator.
// It is built once and treated as read-only; use Clone before changing anything.
type SiteConfig struct {
	Identity SiteIdentity
	Links    LinkPolicy
	Future   FutureFlags
	I18n     LocaleConfig
	Docs     []DocInstance
	Blog     BlogConfig
	Theme    ThemeDescriptor
	Navbar   Navbar
	Footer   Footer
}

// SiteIdentity holds the site-wide metadata.
type SiteIdentity struct {
	Title            string
	Tagline          string
	Favicon          string
	URL              string // scheme and host, no path
	BaseURL          string // root-relative prefix, "/" or "/x/"
	OrganizationName string
	ProjectName      string
}

// BrokenLinkAction is the generator's reaction to an unresolved link.
type BrokenLinkAction string

const (
	BrokenLinkIgnore BrokenLinkAction = "ignore"
	BrokenLinkLog    BrokenLinkAction = "log"
	BrokenLinkWarn   BrokenLinkAction = "warn"
	BrokenLinkThrow  BrokenLinkAction = "throw"
)

// Valid reports whether the action is one the generator understands.
func (a BrokenLinkAction) Valid() bool {
	switch a {
	case BrokenLinkIgnore, BrokenLinkLog, BrokenLinkWarn, BrokenLinkThrow:
		return true
	}
	return false
}

// LinkPolicy controls broken link reporting.
type LinkPolicy struct {
	OnBrokenLinks         BrokenLinkAction
	OnBrokenMarkdownLinks BrokenLinkAction
}

// FutureFlags opts into upcoming generator behaviour.
type FutureFlags struct {
	V4 bool
}

// LocaleConfig lists the supported locales. Default must be one of Locales.
type LocaleConfig struct {
	Default string
	Locales []string
}

// DefaultInstanceID is the id the generator assumes when a nav item names no docs plugin.
const DefaultInstanceID = "default"

// DocInstance is an independently routed documentation collection.
type DocInstance struct {
	ID            string
	Path          string   // source directory relative to the site root
	RouteBasePath string   // URL prefix below BaseURL, without leading slash
	SidebarPath   string   // sidebar descriptor file relative to the site root
	Sidebars      []string // sidebar ids declared by SidebarPath
	EditURL       string
}

// HasSidebar reports whether the instance declares the sidebar id.
func (d DocInstance) HasSidebar(id string) bool {
	for _, s := range d.Sidebars {
		if s == id {
			return true
		}
	}
	return false
}

// BlogConfig describes the blog preset.
type BlogConfig struct {
	Enabled                bool
	Path                   string
	RouteBasePath          string
	ShowReadingTime        bool
	FeedTypes              []string
	FeedXSLT               bool
	EditURL                string
	OnInlineTags           BrokenLinkAction
	OnInlineAuthors        BrokenLinkAction
	OnUntruncatedBlogPosts BrokenLinkAction
}

// ThemeDescriptor selects styling for every rendered page.
type ThemeDescriptor struct {
	CustomCSS                 string
	SocialCard                string
	RespectPrefersColorScheme bool
	PrismTheme                string
	PrismDarkTheme            string
}

// Navbar is the top navigation bar.
type Navbar struct {
	Title string
	Logo  Logo
	Items []NavItem
}

// Logo is an image shown next to the navbar title.
type Logo struct {
	Alt string
	Src string
}

// NavItemKind discriminates navbar entries.
type NavItemKind string

const (
	NavSidebarLink NavItemKind = "docSidebar"
	NavPlainLink   NavItemKind = "link"
)

// Position places a navbar item.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// NavItem is a navbar entry. Sidebar links set SidebarID (and DocsPluginID for
// non-default instances); plain links set exactly one of To or Href.
type NavItem struct {
	Kind         NavItemKind
	Label        string
	Position     Position
	SidebarID    string
	DocsPluginID string
	To           string
	Href         string
}

// InstanceID resolves the doc instance a sidebar link points at.
func (n NavItem) InstanceID() string {
	if n.DocsPluginID == "" {
		return DefaultInstanceID
	}
	return n.DocsPluginID
}

// Footer is the page footer.
type Footer struct {
	Style     string
	Sections  []FooterSection
	Copyright string
}

// FooterSection is a titled column of footer links.
type FooterSection struct {
	Title string
	Items []FooterLink
}

// FooterLink is an internal (To) or external (Href) link.
type FooterLink struct {
	Label string
	To    string
	Href  string
}
