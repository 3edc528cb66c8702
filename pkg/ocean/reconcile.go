package ocean

import (
	"context"
	"fmt"
	"net/http"
)

// DesiredState describes caller intent for one resource kind. It is the
// mutable counterpart of an immutable snapshot T: specs validate their
// fields at set-time, so a DesiredState handed to the engine is always
// internally consistent.
type DesiredState[T any] interface {
	// ResourceName is the identity the API enforces uniqueness on.
	ResourceName() string

	// Matches reports whether the live snapshot already satisfies the
	// desired state, field by field. No side effects.
	Matches(live T) bool

	// ImmutableMismatch returns the name of the first creation-only field
	// that differs between the live snapshot and the desired state, or ""
	// when they agree. Callers are expected to copy immutable fields
	// forward from the live snapshot before updating; a mismatch is a
	// programming error, not something the engine corrects.
	ImmutableMismatch(live T) string
}

// Reconciler binds a resource kind to the API operations the engine
// needs: raw create, lookup by name, and minimal patch. Resource clients
// implement this once per kind instead of re-implementing the
// create-or-conflict and diff-and-patch protocol.
type Reconciler[T any, D DesiredState[T]] interface {
	// Kind names the resource kind for error messages.
	Kind() string

	// Create submits the desired state. A name collision surfaces as an
	// error satisfying IsNameConflict.
	Create(ctx context.Context, desired D) (T, error)

	// FindByName returns the live resource with the given name. The
	// second return is false when no such resource exists.
	FindByName(ctx context.Context, name string) (T, bool, error)

	// Patch issues a partial update containing only the fields that
	// differ between live and desired, and returns the fresh snapshot.
	Patch(ctx context.Context, live T, desired D) (T, error)
}

// CreateResult is the outcome of an idempotent create: either a newly
// created resource or the existing resource a name collision pointed at.
// Exactly one variant is populated.
type CreateResult[T any] struct {
	resource   T
	conflicted bool
}

// Created wraps a newly created resource.
func Created[T any](resource T) CreateResult[T] {
	return CreateResult[T]{resource: resource}
}

// ConflictedWith wraps the pre-existing resource a create collided with.
func ConflictedWith[T any](existing T) CreateResult[T] {
	return CreateResult[T]{resource: existing, conflicted: true}
}

// Resource returns the created or conflicting resource.
func (r CreateResult[T]) Resource() T {
	return r.resource
}

// Conflicted reports whether the create collided with an existing
// resource instead of creating a new one.
func (r CreateResult[T]) Conflicted() bool {
	return r.conflicted
}

// CreateOrConflict submits the desired state and translates a name
// collision into a ConflictedWith result carrying the existing resource.
//
// A collision is only reported when the subsequent lookup actually finds
// the resource the server claimed exists; a lookup miss after a conflict
// response is a protocol violation, since the server just asserted the
// name is taken. Every other error propagates unchanged.
func CreateOrConflict[T any, D DesiredState[T]](ctx context.Context, r Reconciler[T, D], desired D) (CreateResult[T], error) {
	var zero CreateResult[T]

	created, err := r.Create(ctx, desired)
	if err == nil {
		return Created(created), nil
	}

	if !IsNameConflict(err) {
		return zero, fmt.Errorf("creating %s %q: %w", r.Kind(), desired.ResourceName(), err)
	}

	existing, found, err := r.FindByName(ctx, desired.ResourceName())
	if err != nil {
		return zero, fmt.Errorf("looking up conflicting %s %q: %w", r.Kind(), desired.ResourceName(), err)
	}

	if !found {
		return zero, &ProtocolError{
			StatusCode: http.StatusUnprocessableEntity,
			Detail: fmt.Sprintf("server rejected %s create for %q as a name conflict, but no resource with that name exists",
				r.Kind(), desired.ResourceName()),
		}
	}

	return ConflictedWith(existing), nil
}

// Update converges the live resource toward the desired state.
//
// It first verifies that creation-only fields agree between live and
// desired, surfacing a mismatch as an ImmutableFieldError. If the live
// snapshot already matches, no network call is made and changed is false.
// Otherwise a single partial update is issued; a 404 during that write
// means the resource disappeared between read and write and is surfaced
// as a NotFoundError naming the resource.
//
// There is no optimistic concurrency: two callers updating the same
// resource race, and the server keeps the last write.
func Update[T any, D DesiredState[T]](ctx context.Context, r Reconciler[T, D], live T, desired D) (updated T, changed bool, err error) {
	if field := desired.ImmutableMismatch(live); field != "" {
		return live, false, &ImmutableFieldError{Kind: r.Kind(), Field: field}
	}

	if desired.Matches(live) {
		return live, false, nil
	}

	updated, err = r.Patch(ctx, live, desired)
	if err != nil {
		if IsNotFound(err) {
			return live, false, &NotFoundError{Kind: r.Kind(), ID: desired.ResourceName()}
		}

		return live, false, fmt.Errorf("updating %s %q: %w", r.Kind(), desired.ResourceName(), err)
	}

	return updated, true, nil
}
