// Package reference validates identifiers embedded in write requests: their
// syntax first, then that the referenced record exists.
package reference

import (
	"context"
	"fmt"
	"strings"

	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Kind string

const (
	User     Kind = "User"
	Category Kind = "Category"
	Product  Kind = "Product"
	Order    Kind = "Order"
	Cart     Kind = "Cart"
)

// Checker reports whether a record with id exists.
type Checker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, id uuid.UUID) (bool, error)

func (f CheckerFunc) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return f(ctx, id)
}

type Resolver struct {
	checkers map[Kind]Checker
}

func NewResolver() *Resolver {
	return &Resolver{
		checkers: make(map[Kind]Checker),
	}
}

// Register installs the existence check for kind and returns r for chaining.
func (r *Resolver) Register(kind Kind, checker Checker) *Resolver {
	r.checkers[kind] = checker
	return r
}

// Require fails with NotFound when no record of kind has id.
func (r *Resolver) Require(ctx context.Context, kind Kind, id uuid.UUID) error {
	checker, ok := r.checkers[kind]
	if !ok {
		return errors.Errorf("no reference checker registered for %s", kind)
	}

	found, err := checker.Exists(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s reference", kind)
	}

	if !found {
		return domain.NotFoundError(fmt.Sprintf("%s not found", kind))
	}

	return nil
}

// RequireOptional is Require for nullable references; nil always passes.
func (r *Resolver) RequireOptional(ctx context.Context, kind Kind, id *uuid.UUID) error {
	if id == nil {
		return nil
	}

	return r.Require(ctx, kind, *id)
}

// ParseID parses raw as a UUID. label names the field in the validation message.
func ParseID(raw, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.ValidationError(fmt.Sprintf("Invalid %s ID format", label))
	}

	return id, nil
}

// ParseOptionalID parses raw like ParseID, treating an empty string as absent.
func ParseOptionalID(raw, label string) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	id, err := ParseID(raw, label)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

// ParseIDs parses every entry of raw, failing on the first malformed one.
func ParseIDs(raw []string, label string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := ParseID(s, label)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
