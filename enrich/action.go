package enrich

import (
	"strings"
	"sync"

	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/host"
)

// ActionManager fills the per-verb view of an operation.
type ActionManager struct {
	request RequestEnricher
	action  ActionEnricher
	opts    options
}

// NewActionManager creates an action manager. Both enrichers may be nil.
func NewActionManager(request RequestEnricher, action ActionEnricher, opts ...Option) *ActionManager {
	return &ActionManager{
		request: request,
		action:  action,
		opts:    newOptions(opts),
	}
}

// EnrichActions ensures one action per verb and fills each one. Existing
// actions are matched by verb ignoring case and keep their position;
// actions for verbs not listed are kept as declared.
func (m *ActionManager) EnrichActions(actions []*apidoc.ApiAction, verbs []string, op *host.Operation) []*apidoc.ApiAction {
	if m == nil {
		return actions
	}
	if op == nil {
		op = &host.Operation{}
	}

	var contentTypes func() []string
	var statusCodes func() []apidoc.StatusCode
	var relativePath func() []string
	if e := m.request; e != nil {
		contentTypes = sync.OnceValue(func() []string { return e.GetContentTypes(op) })
		statusCodes = sync.OnceValue(func() []apidoc.StatusCode { return e.GetStatusCodes(op) })
		relativePath = sync.OnceValue(func() []string {
			if p := e.GetRelativePath(op); p != "" {
				return []string{p}
			}
			return nil
		})
	}

	for _, verb := range verbs {
		verb = strings.ToUpper(strings.TrimSpace(verb))
		if verb == "" {
			continue
		}

		a := findAction(actions, verb)
		if a == nil {
			a = &apidoc.ApiAction{Verb: verb}
			actions = append(actions, a)
		}

		a.ContentTypes = ApplyStrategy(m.opts.policy, a.ContentTypes, contentTypes)
		a.StatusCodes = ApplyStrategy(m.opts.policy, a.StatusCodes, statusCodes)

		if e := m.action; e != nil {
			a.RelativePaths = ApplyStrategy(m.opts.policy, a.RelativePaths, func() []string {
				return e.GetActionRelativePaths(op, verb)
			})
			a.Notes = FillString(a.Notes, func() string { return e.GetActionNotes(op, verb) })
		} else {
			a.RelativePaths = ApplyStrategy(m.opts.policy, a.RelativePaths, relativePath)
		}
	}
	return actions
}

func findAction(actions []*apidoc.ApiAction, verb string) *apidoc.ApiAction {
	for _, a := range actions {
		if a != nil && strings.EqualFold(a.Verb, verb) {
			return a
		}
	}
	return nil
}
