package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalURL(t *testing.T) {
	s := Default()
	assert.Equal(t, "https://www.clarivisgroup.com", s.CanonicalURL("/"))
	assert.Equal(t, "https://www.clarivisgroup.com", s.CanonicalURL(""))
	assert.Equal(t, "https://www.clarivisgroup.com/about", s.CanonicalURL("/about"))
	assert.Equal(t, "https://www.clarivisgroup.com/blog/3", s.CanonicalURL("blog/3"))
	assert.Equal(t, "https://www.clarivisgroup.com/", s.RootURL())
	assert.Equal(t, "https://www.clarivisgroup.com/#organization", s.OrganizationID())
}

func TestWithDefaults(t *testing.T) {
	s := Site{Name: "Acme", Domain: "https://acme.test/", AnalyticsID: "-"}.WithDefaults()

	assert.Equal(t, "Acme", s.Name)
	assert.Equal(t, "https://acme.test", s.Domain)
	assert.Empty(t, s.AnalyticsID)
	assert.Equal(t, Default().LegalName, s.LegalName)
	assert.Equal(t, Default().BlogKeywords, s.BlogKeywords)
	assert.Equal(t, "acme.test", s.PreferredHost())
}

func TestWithDefaultsKeepsExplicitEmptyLists(t *testing.T) {
	s := Site{AlternateNames: []string{}}.WithDefaults()
	assert.Empty(t, s.AlternateNames)
	assert.NotEmpty(t, s.FounderAlternateNames)
}
