// Package site holds the identity of the organisation the generated site represents.
package site

import "strings"

// Site describes the firm behind the website. Values feed page meta tags,
// structured data and the canonical-host redirect.
type Site struct {
	Name                  string   `yaml:"name" json:"name"`
	LegalName             string   `yaml:"legal_name" json:"legalName"`
	Domain                string   `yaml:"domain" json:"domain"`
	Description           string   `yaml:"description" json:"description"`
	AlternateNames        []string `yaml:"alternate_names" json:"alternateNames,omitempty"`
	Founder               string   `yaml:"founder" json:"founder"`
	FounderAlternateNames []string `yaml:"founder_alternate_names" json:"founderAlternateNames,omitempty"`
	FounderTitle          string   `yaml:"founder_title" json:"founderTitle"`
	FounderProfileTitle   string   `yaml:"founder_profile_title" json:"founderProfileTitle"`
	FounderBio            string   `yaml:"founder_bio" json:"founderBio"`
	Email                 string   `yaml:"email" json:"email"`
	Phone                 string   `yaml:"phone" json:"phone"`
	Logo                  string   `yaml:"logo" json:"logo"`
	OGImage               string   `yaml:"og_image" json:"ogImage"`
	ThemeColor            string   `yaml:"theme_color" json:"themeColor"`
	AnalyticsID           string   `yaml:"analytics_id" json:"analyticsId,omitempty"`
	CanonicalHost         string   `yaml:"canonical_host" json:"canonicalHost,omitempty"`
	Locale                string   `yaml:"locale" json:"locale"`
	BlogName              string   `yaml:"blog_name" json:"blogName"`
	BlogKeywords          []string `yaml:"blog_keywords" json:"blogKeywords,omitempty"`
}

// Default returns the identity of Clarivis Consulting Group.
func Default() Site {
	return Site{
		Name:                  "Clarivis Consulting Group",
		LegalName:             "Clarivis Consulting Group, LLC",
		Domain:                "https://www.clarivisgroup.com",
		Description:           "Health sector education accreditation, compliance, and program advisory services led by Eric A. Brichto, Esq.",
		AlternateNames:        []string{"Clarivis Group", "Clarivis", "ClarivIsGroup"},
		Founder:               "Eric A. Brichto, Esq.",
		FounderAlternateNames: []string{"Eric Brichto", "Eric A. Brichto"},
		FounderTitle:          "Founder & Principal",
		FounderProfileTitle:   "Founder & Principal Consultant",
		FounderBio:            "Licensed attorney and accreditation professional with decades of leadership in health sector education.",
		Email:                 "ebrichto@clarivisgroup.com",
		Phone:                 "+1-508-446-4592",
		Logo:                  "https://www.clarivisgroup.com/logo.png",
		OGImage:               "https://www.clarivisgroup.com/og-image.png",
		ThemeColor:            "#1a3a4a",
		AnalyticsID:           "G-FZP6SPKMK5",
		CanonicalHost:         "clarivisgroup.com",
		Locale:                "en_US",
		BlogName:              "Eric A. Brichto Blog",
		BlogKeywords:          []string{"Eric Brichto", "accreditation", "healthcare education", "compliance"},
	}
}

// WithDefaults fills every empty field from Default. Setting the analytics
// id or canonical host to "-" switches the feature off.
func (s Site) WithDefaults() Site {
	d := Default()
	fill := func(dst *string, v string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = v
		}
	}
	fill(&s.Name, d.Name)
	fill(&s.LegalName, d.LegalName)
	fill(&s.Domain, d.Domain)
	fill(&s.Description, d.Description)
	fill(&s.Founder, d.Founder)
	fill(&s.FounderTitle, d.FounderTitle)
	fill(&s.FounderProfileTitle, d.FounderProfileTitle)
	fill(&s.FounderBio, d.FounderBio)
	fill(&s.Email, d.Email)
	fill(&s.Phone, d.Phone)
	fill(&s.Logo, d.Logo)
	fill(&s.OGImage, d.OGImage)
	fill(&s.ThemeColor, d.ThemeColor)
	fill(&s.AnalyticsID, d.AnalyticsID)
	fill(&s.CanonicalHost, d.CanonicalHost)
	fill(&s.Locale, d.Locale)
	fill(&s.BlogName, d.BlogName)
	if s.AlternateNames == nil {
		s.AlternateNames = d.AlternateNames
	}
	if s.FounderAlternateNames == nil {
		s.FounderAlternateNames = d.FounderAlternateNames
	}
	if s.BlogKeywords == nil {
		s.BlogKeywords = d.BlogKeywords
	}
	if s.AnalyticsID == "-" {
		s.AnalyticsID = ""
	}
	if s.CanonicalHost == "-" {
		s.CanonicalHost = ""
	}
	s.Domain = strings.TrimRight(s.Domain, "/")
	return s
}

// CanonicalURL returns the absolute URL of a page. The home page maps to
// the bare domain without a trailing slash.
func (s Site) CanonicalURL(path string) string {
	if path == "" || path == "/" {
		return s.Domain
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.Domain + path
}

// RootURL is the domain with a trailing slash, used by the 404 document.
func (s Site) RootURL() string {
	return s.Domain + "/"
}

// OrganizationID is the JSON-LD node identifier of the organisation.
func (s Site) OrganizationID() string {
	return s.Domain + "/#organization"
}

// PreferredHost returns the host part of Domain ("www.example.com").
func (s Site) PreferredHost() string {
	h := s.Domain
	if i := strings.Index(h, "://"); i >= 0 {
		h = h[i+3:]
	}
	if i := strings.IndexAny(h, "/:"); i >= 0 {
		h = h[:i]
	}
	return h
}
