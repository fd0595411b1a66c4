package host

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

var (
	// ErrNilRequestType is returned when an operation has no request type.
	ErrNilRequestType = errors.New("host: operation has nil request type")
	// ErrDuplicateOperation is returned when an operation name is registered twice.
	ErrDuplicateOperation = errors.New("host: duplicate operation")
)

// AnyVerb is the wildcard action matching every HTTP verb.
const AnyVerb = "ANY"

// DefaultFormats are the wire formats a Host exposes unless configured otherwise.
var DefaultFormats = []string{"json", "xml", "jsv", "csv", "x-msgpack"}

// Operation is the metadata snapshot of one API endpoint.
type Operation struct {
	// Name identifies the operation. Defaults to the request type name.
	Name string

	RequestType  reflect.Type
	ResponseType reflect.Type // nil when the operation returns nothing

	// Actions are the declared HTTP verbs; AnyVerb matches all verbs.
	Actions []string

	// ServiceType is the type implementing the operation. Its methods are
	// inspected to infer one-way operations.
	ServiceType reflect.Type

	RestrictTo *Restrict

	RequiresAuthentication bool
	RequiredRoles          []string
	RequiresAnyRole        bool
	RequiredPermissions    []string
	RequiresAnyPermission  bool

	// IsOneWay marks a fire-and-forget operation.
	IsOneWay bool
}

// Option configures a Host.
type Option func(*Host)

// WithFormats sets the wire formats the host exposes.
func WithFormats(formats ...string) Option {
	return func(h *Host) {
		h.formats = slices.Clone(formats)
	}
}

// WithMetadata sets the annotation store of the host.
func WithMetadata(md *Metadata) Option {
	return func(h *Host) {
		if md != nil {
			h.metadata = md
		}
	}
}

// Host is a registry of API operations together with the metadata needed
// to document them. It is safe for concurrent use.
type Host struct {
	mu       sync.RWMutex
	ops      []*Operation
	byName   map[string]*Operation
	formats  []string
	metadata *Metadata
}

// New creates a host with DefaultFormats and an empty metadata store.
func New(opts ...Option) *Host {
	h := &Host{
		byName:   make(map[string]*Operation),
		formats:  slices.Clone(DefaultFormats),
		metadata: NewMetadata(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adds an operation. The operation is copied; later changes to op
// are not observed.
func (h *Host) Register(op Operation) error {
	if op.RequestType == nil {
		return ErrNilRequestType
	}
	if op.Name == "" {
		op.Name = Indirect(op.RequestType).Name()
	}
	op.Actions = slices.Clone(op.Actions)
	op.RequiredRoles = slices.Clone(op.RequiredRoles)
	op.RequiredPermissions = slices.Clone(op.RequiredPermissions)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.byName[op.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateOperation, op.Name)
	}
	h.byName[op.Name] = &op
	h.ops = append(h.ops, &op)
	return nil
}

// Operations returns the registered operations in registration order.
func (h *Host) Operations() []*Operation {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.ops)
}

// Operation returns the operation registered under name.
func (h *Host) Operation(name string) (*Operation, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	op, ok := h.byName[name]
	return op, ok
}

// Formats returns the wire formats the host exposes.
func (h *Host) Formats() []string {
	return slices.Clone(h.formats)
}

// Metadata returns the annotation store of the host.
func (h *Host) Metadata() *Metadata {
	return h.metadata
}
