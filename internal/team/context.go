package team

import "context"

// Actor is the user acting on the files within a team.
// A zero UserID or TeamID means nobody is signed in to a team
type Actor struct {
	UserID uint
	TeamID uint
}

func (actor Actor) IsAnonymous() bool {
	return actor.UserID == 0 || actor.TeamID == 0
}

type actorContextKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}
