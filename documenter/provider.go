// Package documenter builds the API documentation of a host by running
// every registered operation through a chain of enrichers.
package documenter

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/enrich"
	"github.com/vitalvas/introspec/host"
)

// ErrNilHost is returned by NewProvider when no host is given.
var ErrNilHost = errors.New("documenter: host is nil")

// DocumentationProvider supplies the aggregated documentation document.
type DocumentationProvider interface {
	GetApiDocumentation() *apidoc.ApiDocumentation
}

// Config holds the API-level information of the document.
type Config struct {
	Title       string             `koanf:"title"`
	Version     string             `koanf:"version"`
	Description string             `koanf:"description"`
	BaseURL     string             `koanf:"base-url"`
	Contact     *apidoc.ApiContact `koanf:"contact"`
	LicenseURL  string             `koanf:"license-url"`
}

// PolicyPinner is implemented by sources whose collections merge with a
// fixed policy instead of the provider's. Gap-filling sources pin
// enrich.SetIfEmpty so they never add to what earlier sources supplied.
type PolicyPinner interface {
	Policy() enrich.Policy
}

// Option configures a Provider.
type Option func(*Provider)

// WithEnrichers appends sources to the enricher chain. Sources run in the
// order given; each may implement any subset of the enrich capabilities.
// A source implementing PolicyPinner merges with its own policy.
func WithEnrichers(sources ...any) Option {
	return func(p *Provider) {
		p.sources = append(p.sources, sources...)
	}
}

// WithOverrides sets the developer-declared fragments.
func WithOverrides(o Overrides) Option {
	return func(p *Provider) {
		p.overrides = o
	}
}

// WithPolicy sets the collection merge policy of every manager.
func WithPolicy(policy enrich.Policy) Option {
	return func(p *Provider) {
		p.policy = policy
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

type chainLink struct {
	resources *enrich.ResourceManager
	requests  *enrich.RequestManager
}

// Provider builds the documentation of a host once and serves it until
// Invalidate is called. It is safe for concurrent use.
type Provider struct {
	host      *host.Host
	cfg       Config
	overrides Overrides
	sources   []any
	policy    enrich.Policy
	logger    zerolog.Logger

	mu   sync.RWMutex
	once *sync.Once
	doc  *apidoc.ApiDocumentation
}

var _ DocumentationProvider = (*Provider)(nil)

// NewProvider creates a provider for h.
func NewProvider(h *host.Host, cfg Config, opts ...Option) (*Provider, error) {
	if h == nil {
		return nil, ErrNilHost
	}
	p := &Provider{
		host:   h,
		cfg:    cfg,
		logger: zerolog.Nop(),
		once:   new(sync.Once),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// GetApiDocumentation returns the document, building it on first use.
// The returned document is shared; callers must not modify it.
func (p *Provider) GetApiDocumentation() *apidoc.ApiDocumentation {
	p.mu.RLock()
	once := p.once
	p.mu.RUnlock()

	once.Do(func() {
		doc := p.build()
		p.mu.Lock()
		p.doc = doc
		p.mu.Unlock()
	})

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.doc
}

// Invalidate discards the built document; the next call to
// GetApiDocumentation rebuilds it.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	p.once = new(sync.Once)
	p.mu.Unlock()
}

func (p *Provider) chain() []chainLink {
	links := make([]chainLink, 0, len(p.sources))
	for _, src := range p.sources {
		caps := enrich.CapabilitiesOf(src)
		if caps.IsEmpty() {
			p.logger.Warn().Type("source", src).Msg("enricher implements no capability")
			continue
		}

		managerOpts := p.managerOptions(src)
		resources := enrich.NewResourceManager(caps.Resource, enrich.NewPropertyManager(caps.Property, managerOpts...), managerOpts...)
		actions := enrich.NewActionManager(caps.Request, caps.Action, managerOpts...)
		links = append(links, chainLink{
			resources: resources,
			requests:  enrich.NewRequestManager(caps.Request, caps.Security, actions, resources.EnrichResource, managerOpts...),
		})
	}
	return links
}

func (p *Provider) managerOptions(src any) []enrich.Option {
	policy := p.policy
	if pinner, ok := src.(PolicyPinner); ok && pinner.Policy() != nil {
		policy = pinner.Policy()
	}

	opts := []enrich.Option{enrich.WithLogger(p.logger)}
	if policy != nil {
		opts = append(opts, enrich.WithPolicy(policy))
	}
	return opts
}

func (p *Provider) build() *apidoc.ApiDocumentation {
	doc := &apidoc.ApiDocumentation{
		Title:       p.cfg.Title,
		ApiVersion:  p.cfg.Version,
		ApiBaseURL:  p.cfg.BaseURL,
		Description: p.cfg.Description,
		LicenseURL:  p.cfg.LicenseURL,
	}
	if p.cfg.Contact != nil {
		contact := *p.cfg.Contact
		doc.Contact = &contact
	}

	links := p.chain()
	for _, op := range p.host.Operations() {
		res := p.overrides.For(op.Name)
		if res == nil {
			res = &apidoc.ApiResourceDocumentation{}
		}
		if res.TypeName == "" {
			res.TypeName = enrich.TypeName(op.RequestType)
		}

		for _, link := range links {
			link.resources.EnrichType(&res.ApiResourceType, op.RequestType, op)
			link.requests.EnrichRequest(res, op)
		}

		res.Normalize()
		doc.Resources = append(doc.Resources, res)
	}

	p.logger.Info().
		Int("resources", len(doc.Resources)).
		Int("enrichers", len(links)).
		Msg("api documentation built")
	return doc
}
