// Package demo registers a small pet store API used by the introspec
// command to showcase the generated documentation.
package demo

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/vitalvas/introspec/host"
)

type Pet struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Tags   []string `json:"tags,omitempty"`
	Status string   `json:"status"`
}

type FindPets struct {
	Kind   string `json:"kind" apimember:"description=Kind of pet,paramType=query" allowable:"list=cat|dog|bird"`
	Limit  int    `json:"limit" apimember:"description=Maximum number of results,paramType=query" allowable:"min=1,max=100"`
	Offset int    `json:"offset" apimember:"paramType=query"`
}

type GetPet struct {
	ID int64 `json:"id" apimember:"description=Pet identifier,paramType=path,required"`
}

type CreatePet struct {
	Name string   `json:"name" apimember:"required"`
	Kind string   `json:"kind" apimember:"required" allowable:"list=cat|dog|bird"`
	Tags []string `json:"tags,omitempty" apimember:"allowMultiple"`
}

// Validate rejects pets without a name.
func (c *CreatePet) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// APIAttributes declares the documentation of CreatePet.
func (CreatePet) APIAttributes() []any {
	return []any{
		host.Api{Description: "Adds a pet to the store"},
		host.Route{Path: "/pets", Verbs: []string{http.MethodPost}},
		host.ApiResponse{StatusCode: http.StatusBadRequest, Description: "Invalid pet"},
		host.Category{Name: "pets"},
		host.Tags{Names: []string{"pets", "write"}},
	}
}

type DeletePet struct {
	ID int64 `json:"id" apimember:"paramType=path,required"`
}

type PlaceOrder struct {
	PetID    int64 `json:"petId" apimember:"required"`
	Quantity int   `json:"quantity" allowable:"name=quantity,min=1,max=10"`
}

type Order struct {
	ID       int64  `json:"id"`
	PetID    int64  `json:"petId"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

type NotifyOwner struct {
	PetID   int64  `json:"petId"`
	Message string `json:"message"`
}

// PetService implements the pet operations.
type PetService interface {
	Find(ctx context.Context, req *FindPets) ([]Pet, error)
	Get(ctx context.Context, req *GetPet) (*Pet, error)
	Create(ctx context.Context, req *CreatePet) (*Pet, error)
	Delete(ctx context.Context, req *DeletePet) error
}

// StoreService implements the store operations.
type StoreService interface {
	PlaceOrder(ctx context.Context, req *PlaceOrder) (*Order, error)
	Notify(ctx context.Context, req *NotifyOwner)
}

// NewHost returns a host with the pet store operations registered. An
// empty formats list keeps the host defaults.
func NewHost(formats ...string) (*host.Host, error) {
	md := host.NewMetadata().
		Annotate(FindPets{},
			host.Api{Description: "Lists pets matching the filter"},
			host.Route{Path: "/pets", Verbs: []string{http.MethodGet}, Notes: "Results are paged"},
			host.Category{Name: "pets"},
			host.Tags{Names: []string{"pets", "read"}},
		).
		Annotate(GetPet{},
			host.Route{Path: "/pets/{id}", Verbs: []string{http.MethodGet}},
			host.ApiResponse{StatusCode: http.StatusNotFound, Description: "Pet not found"},
			host.Category{Name: "pets"},
			host.Tags{Names: []string{"pets", "read"}},
		).
		Annotate(DeletePet{},
			host.Description{Text: "Removes a pet"},
			host.Route{Path: "/pets/{id}", Verbs: []string{http.MethodDelete}},
			host.Category{Name: "pets"},
		).
		Annotate(PlaceOrder{},
			host.Route{Path: "/store/orders", Verbs: []string{http.MethodPost}},
			host.AddHeader{ContentType: "application/vnd.petstore.order+json"},
			host.Category{Name: "store"},
		).
		Annotate(NotifyOwner{},
			host.Exclude{Features: host.FeatureMsgPack},
			host.Category{Name: "store"},
		).
		AnnotateMember(Pet{}, "Status", host.ApiAllowableValues{
			Type:   host.AllowableList,
			Values: []string{"available", "pending", "sold"},
		})

	opts := []host.Option{host.WithMetadata(md)}
	if len(formats) > 0 {
		opts = append(opts, host.WithFormats(formats...))
	}
	h := host.New(opts...)

	petService := reflect.TypeFor[PetService]()
	storeService := reflect.TypeFor[StoreService]()

	ops := []host.Operation{
		{
			RequestType:  reflect.TypeFor[FindPets](),
			ResponseType: reflect.TypeFor[[]Pet](),
			Actions:      []string{http.MethodGet},
			ServiceType:  petService,
		},
		{
			RequestType:  reflect.TypeFor[GetPet](),
			ResponseType: reflect.TypeFor[Pet](),
			Actions:      []string{http.MethodGet},
			ServiceType:  petService,
		},
		{
			RequestType:            reflect.TypeFor[CreatePet](),
			ResponseType:           reflect.TypeFor[Pet](),
			Actions:                []string{http.MethodPost},
			ServiceType:            petService,
			RequiresAuthentication: true,
			RequiredRoles:          []string{"staff"},
		},
		{
			RequestType:            reflect.TypeFor[DeletePet](),
			Actions:                []string{http.MethodDelete},
			ServiceType:            petService,
			RequiresAuthentication: true,
			RequiredRoles:          []string{"admin", "staff"},
			RequiresAnyRole:        true,
		},
		{
			RequestType:            reflect.TypeFor[PlaceOrder](),
			ResponseType:           reflect.TypeFor[Order](),
			Actions:                []string{host.AnyVerb},
			ServiceType:            storeService,
			RequiresAuthentication: true,
			RequiredPermissions:    []string{"orders:write"},
		},
		{
			RequestType: reflect.TypeFor[NotifyOwner](),
			Actions:     []string{http.MethodPost},
			ServiceType: storeService,
			RestrictTo:  &host.Restrict{AccessTo: host.AttrJSON},
		},
	}

	for _, op := range ops {
		if err := h.Register(op); err != nil {
			return nil, err
		}
	}
	return h, nil
}
