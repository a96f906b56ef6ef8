package authz

import "context"

type Decision struct {
	Allowed bool
	Reason  string
}

type Request struct {
	Subject  string // e.g. "user:acct-42"
	Relation string // action verb: "read", "update", "delete"
	Object   string // e.g. "bucket:media/objects/cat.png"
}

// Authorizer is one authorization provider. Implementations must be safe
// for concurrent use.
type Authorizer interface {
	Check(ctx context.Context, req Request) (Decision, error)
}
