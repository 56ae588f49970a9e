package site

import (
	"fmt"
	"time"
)

const (
	siteTitle   = "LiangHChao的个人博客项目"
	repoURL     = "https://github.com/LiangHChao/docs"
	editURLBase = repoURL + "/edit/master"
)

// Build returns the canonical site configuration.
func Build() *SiteConfig {
	return BuildAt(time.Now())
}

// BuildAt returns the canonical site configuration with the copyright year taken from now.
func BuildAt(now time.Time) *SiteConfig {
	return &SiteConfig{
		Identity: SiteIdentity{
			Title:            siteTitle,
			Tagline:          "欢迎使用",
			Favicon:          "img/favicon.ico",
			URL:              "https://lianghchao.github.io",
			BaseURL:          "/docs/",
			OrganizationName: "LiangHChao",
			ProjectName:      "docs",
		},
		Links: LinkPolicy{
			OnBrokenLinks:         BrokenLinkIgnore,
			OnBrokenMarkdownLinks: BrokenLinkIgnore,
		},
		Future: FutureFlags{V4: true},
		I18n: LocaleConfig{
			Default: "en",
			Locales: []string{"en"},
		},
		Docs: []DocInstance{
			{
				ID:            DefaultInstanceID,
				Path:          "docs",
				RouteBasePath: "docs",
				SidebarPath:   "./sidebars.ts",
				Sidebars:      []string{"tutorialSidebar"},
				EditURL:       editURLBase,
			},
			{
				ID:            "javadoc",
				Path:          "javadoc",
				RouteBasePath: "javadoc",
				SidebarPath:   "./sidebarsJavadoc.ts",
				Sidebars:      []string{"javaSidebar"},
				EditURL:       editURLBase,
			},
			{
				ID:            "sqlDoc",
				Path:          "sql-doc",
				RouteBasePath: "sqlDoc",
				SidebarPath:   "./sidebarsSQLdoc.ts",
				Sidebars:      []string{"sqlSidebar"},
				EditURL:       editURLBase,
			},
		},
		Blog: BlogConfig{
			Enabled:                true,
			Path:                   "blog",
			RouteBasePath:          "blog",
			ShowReadingTime:        true,
			FeedTypes:              []string{"rss", "atom"},
			FeedXSLT:               true,
			EditURL:                editURLBase,
			OnInlineTags:           BrokenLinkWarn,
			OnInlineAuthors:        BrokenLinkWarn,
			OnUntruncatedBlogPosts: BrokenLinkWarn,
		},
		Theme: ThemeDescriptor{
			CustomCSS:                 "./src/css/custom.css",
			SocialCard:                "img/docusaurus-social-card.jpg",
			RespectPrefersColorScheme: true,
			PrismTheme:                "github",
			PrismDarkTheme:            "dracula",
		},
		Navbar: Navbar{
			Title: "我的文档",
			Logo:  Logo{Alt: "我的文档 Logo", Src: "img/logo.svg"},
			Items: []NavItem{
				{Kind: NavSidebarLink, SidebarID: "tutorialSidebar", Position: PositionLeft, Label: "文档"},
				{Kind: NavSidebarLink, SidebarID: "javaSidebar", DocsPluginID: "javadoc", Position: PositionLeft, Label: "Java"},
				{Kind: NavSidebarLink, SidebarID: "sqlSidebar", DocsPluginID: "sqlDoc", Position: PositionLeft, Label: "SQL"},
				{Kind: NavPlainLink, To: "/blog", Label: "博客", Position: PositionLeft},
				{Kind: NavPlainLink, Href: repoURL, Label: "GitHub", Position: PositionRight},
			},
		},
		Footer: Footer{
			Style: "dark",
			Sections: []FooterSection{
				{
					Title: "Docs",
					Items: []FooterLink{{Label: "文档", To: "/docs/docs/intro"}},
				},
				{
					Title: "Learn More",
					Items: []FooterLink{
						{Label: "RuoYi-Plus", Href: "https://plus-doc.top/"},
						{Label: "no-ip", Href: "https://my.noip.com/"},
					},
				},
				{
					Title: "More",
					Items: []FooterLink{
						{Label: "博客", To: "/blog"},
						{Label: "Dinosaurs", Href: "https://github.com/facebook/docusaurus"},
					},
				},
			},
			Copyright: fmt.Sprintf("Copyright © %d My Project, Inc. Built with Docusaurus.", now.Year()),
		},
	}
}
