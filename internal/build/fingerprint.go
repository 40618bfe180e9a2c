package build

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/render"
	"git.home.luguber.info/inful/sitegen/internal/routes"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

type fingerprintInput struct {
	Site       site.Site      `json:"site"`
	Posts      string         `json:"posts"`
	Pages      []content.Page `json:"pages"`
	QuickPages []content.Page `json:"quick_pages"`
	Routes     []routes.Route `json:"routes"`
	Assets     render.Assets  `json:"assets"`
	Sitemap    bool           `json:"sitemap"`
	Robots     bool           `json:"robots"`
}

// Fingerprint digests everything that affects the generated documents. The
// bundle assets are part of it, so rewriting dist/index.html with identical
// references does not count as a change.
func Fingerprint(cfg *config.Config, lib *content.Library, table *routes.Table, assets render.Assets) (string, error) {
	data, err := json.Marshal(fingerprintInput{
		Site:       cfg.Site,
		Posts:      lib.Posts.Fingerprint(),
		Pages:      lib.Pages,
		QuickPages: lib.QuickPages,
		Routes:     table.Routes(),
		Assets:     assets,
		Sitemap:    cfg.Build.Sitemap,
		Robots:     cfg.Build.Robots,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
