package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// Validate checks the configuration and returns a classified config error
// describing the first problem found.
func (c *Config) Validate() error {
	v := &configurationValidator{config: c}
	if err := v.validate(); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid configuration").
			Fatal().UserAction().Build()
	}
	return nil
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateSite(); err != nil {
		return err
	}
	if err := cv.validateBuild(); err != nil {
		return err
	}
	if err := cv.validateContent(); err != nil {
		return err
	}
	if err := cv.validateServer(); err != nil {
		return err
	}
	if err := cv.validateInquiry(); err != nil {
		return err
	}
	return cv.validateMonitoring()
}

func (cv *configurationValidator) validateSite() error {
	s := cv.config.Site
	u, err := url.Parse(s.Domain)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("site.domain must be an absolute http(s) URL, got %q", s.Domain)
	}
	if u.Path != "" {
		return fmt.Errorf("site.domain must not contain a path, got %q", s.Domain)
	}
	if !strings.HasPrefix(s.ThemeColor, "#") {
		return fmt.Errorf("site.theme_color must be a hex color, got %q", s.ThemeColor)
	}
	return nil
}

func (cv *configurationValidator) validateBuild() error {
	b := cv.config.Build
	if strings.TrimSpace(b.DistDir) == "" {
		return errors.New("build.dist_dir cannot be empty")
	}
	if b.Concurrency > 64 {
		return fmt.Errorf("build.concurrency must be at most 64, got %d", b.Concurrency)
	}
	return nil
}

func (cv *configurationValidator) validateContent() error {
	g := cv.config.Content.Git
	if g == nil {
		return nil
	}
	if g.URL == "" {
		return errors.New("content.git.url is required when content.git is set")
	}
	if g.Auth == nil {
		return nil
	}
	switch g.Auth.Type {
	case AuthTypeBasic:
		if g.Auth.Username == "" || g.Auth.Password == "" {
			return errors.New("content.git.auth: basic auth requires username and password")
		}
	case AuthTypeToken:
		if g.Auth.Token == "" {
			return errors.New("content.git.auth: token auth requires a token")
		}
	case AuthTypeSSH:
		if g.Auth.KeyPath == "" {
			return errors.New("content.git.auth: ssh auth requires key_path")
		}
	case AuthTypeNone:
	}
	return nil
}

func (cv *configurationValidator) validateServer() error {
	s := cv.config.Server
	if s.Addr == s.AdminAddr {
		return fmt.Errorf("server.addr and server.admin_addr must differ, both are %q", s.Addr)
	}
	for _, o := range s.CORSOrigins {
		if o == "*" {
			continue
		}
		if u, err := url.Parse(o); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("server.cors_origins: invalid origin %q", o)
		}
	}
	return nil
}

func (cv *configurationValidator) validateInquiry() error {
	iq := cv.config.Inquiry
	seen := make(map[string]bool, len(iq.Services))
	for _, s := range iq.Services {
		if s.ID == "" {
			return errors.New("inquiry.services: service id cannot be empty")
		}
		if seen[s.ID] {
			return fmt.Errorf("inquiry.services: duplicate service id %q", s.ID)
		}
		seen[s.ID] = true
	}
	if iq.Notify.Enabled {
		if iq.Notify.APIKey == "" {
			return errors.New("inquiry.notify.api_key is required when notifications are enabled")
		}
		if iq.Notify.From == "" || len(iq.Notify.To) == 0 {
			return errors.New("inquiry.notify requires from and at least one to address")
		}
	}
	if iq.Events.Enabled && iq.Events.URL == "" {
		return errors.New("inquiry.events.url is required when events are enabled")
	}
	return nil
}

func (cv *configurationValidator) validateMonitoring() error {
	p := cv.config.Monitoring.Metrics.Path
	if !strings.HasPrefix(p, "/") {
		return fmt.Errorf("monitoring.metrics.path must start with '/', got %q", p)
	}
	return nil
}
