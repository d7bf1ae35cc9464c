package inventory

import "context"

type actorKey struct{}

// WithActor adjunta al contexto el ID del usuario que ejecuta la operación.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ContextActorResolver lee el actor cargado con WithActor; sin actor devuelve "" (anónimo).
type ContextActorResolver struct{}

func (ContextActorResolver) Actor(ctx context.Context) string {
	v, _ := ctx.Value(actorKey{}).(string)
	return v
}

// StaticActor resuelve siempre el mismo actor (seeders, jobs).
type StaticActor string

func (a StaticActor) Actor(context.Context) string { return string(a) }
