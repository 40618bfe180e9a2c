package seo

import "strings"

// ShareLinks are the social network share URLs for a page.
type ShareLinks struct {
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
}

// Share builds share URLs for the page at pageURL.
func Share(pageURL, title string) ShareLinks {
	u := EncodeURIComponent(pageURL)
	t := EncodeURIComponent(title)
	return ShareLinks{
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + u,
		Twitter:  "https://twitter.com/intent/tweet?url=" + u + "&text=" + t,
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + u + "&quote=" + t,
	}
}

// EncodeURIComponent percent-encodes s like the ECMAScript function of the
// same name: everything but A-Z a-z 0-9 - _ . ! ~ * ' ( ) is escaped, and
// spaces become %20 rather than "+".
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func unreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
