package config

import (
	"path/filepath"
	"time"
)

const (
	defaultDistDir      = "dist"
	defaultConcurrency  = 4
	defaultServerAddr   = ":8080"
	defaultAdminAddr    = ":8081"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultDatabasePath = "sitegen.db"
	defaultSubmitDelay  = time.Second
	defaultStream       = "SITEGEN"
	defaultSubject      = "sitegen.inquiries"
	defaultDebounce     = 500 * time.Millisecond
	defaultMetricsPath  = "/metrics"
	defaultGitDir       = ".sitegen/content"
)

// Retry defaults for inquiry delivery.
const (
	DefaultRetryInitial    = 500 * time.Millisecond
	DefaultRetryMax        = 10 * time.Second
	DefaultRetryMaxRetries = 3
)

// DefaultProgramTypes lists the program types offered by the pricing form.
func DefaultProgramTypes() []string {
	return []string{
		"Healthcare Management",
		"Nursing Education",
		"Allied Health",
		"Public Health",
		"Medical Education",
		"Other",
	}
}

// DefaultServices is the pricing form service catalogue.
func DefaultServices() []ServiceItem {
	return []ServiceItem{
		{ID: "self-study", Label: "Self-Study Support"},
		{ID: "full-cycle", Label: "Full-Cycle Accreditation Support"},
		{ID: "post-decision", Label: "Post-Decision Support"},
		{ID: "program-origination", Label: "Program Origination"},
		{ID: "mock-visit", Label: "Mock Site Visit"},
		{ID: "training", Label: "Training & Workshops"},
		{ID: "compliance", Label: "Compliance Consulting"},
	}
}

func applyDefaults(cfg *Config) {
	cfg.Site = cfg.Site.WithDefaults()

	if cfg.Build.DistDir == "" {
		cfg.Build.DistDir = defaultDistDir
	}
	if cfg.Build.Concurrency <= 0 {
		cfg.Build.Concurrency = defaultConcurrency
	}

	if g := cfg.Content.Git; g != nil {
		if g.Branch == "" {
			g.Branch = "main"
		}
		if g.Dir == "" {
			g.Dir = defaultGitDir
		}
		if g.Auth != nil {
			g.Auth.Type = authTypeNormalizer.Normalize(string(g.Auth.Type))
		}
		if cfg.Content.BlogDir == "" {
			cfg.Content.BlogDir = filepath.Join(g.Dir, "blog")
		}
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultServerAddr
	}
	if cfg.Server.AdminAddr == "" {
		cfg.Server.AdminAddr = defaultAdminAddr
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}

	applyInquiryDefaults(&cfg.Inquiry)

	if cfg.Schedule.Debounce <= 0 {
		cfg.Schedule.Debounce = defaultDebounce
	}

	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))

	if cfg.Monitoring.Metrics.Path == "" {
		cfg.Monitoring.Metrics.Path = defaultMetricsPath
	}
}

func applyInquiryDefaults(iq *InquiryConfig) {
	if iq.DatabasePath == "" {
		iq.DatabasePath = defaultDatabasePath
	}
	// A negative delay disables the simulated latency; zero means default.
	if iq.SubmitDelay == 0 {
		iq.SubmitDelay = defaultSubmitDelay
	} else if iq.SubmitDelay < 0 {
		iq.SubmitDelay = 0
	}
	if len(iq.ProgramTypes) == 0 {
		iq.ProgramTypes = DefaultProgramTypes()
	}
	if len(iq.Services) == 0 {
		iq.Services = DefaultServices()
	}
	if iq.Events.Stream == "" {
		iq.Events.Stream = defaultStream
	}
	if iq.Events.Subject == "" {
		iq.Events.Subject = defaultSubject
	}
	iq.Retry.Backoff = NormalizeRetryBackoff(string(iq.Retry.Backoff))
	if iq.Retry.Initial <= 0 {
		iq.Retry.Initial = DefaultRetryInitial
	}
	if iq.Retry.Max <= 0 {
		iq.Retry.Max = DefaultRetryMax
	}
	if iq.Retry.MaxRetries <= 0 {
		iq.Retry.MaxRetries = DefaultRetryMaxRetries
	}
}
