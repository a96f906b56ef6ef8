package resource

import (
	"fmt"
	"net/http"
)

// Action is the verb checked against the authorization provider.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ErrUnsupportedMethod is returned for methods outside HEAD/GET/PUT/DELETE.
var ErrUnsupportedMethod = fmt.Errorf("unsupported method")

// ActionForMethod maps an HTTP method to the action verb used in
// authorization checks. The mapping is authoritative for the decision even
// when the storage operation would fail downstream.
func ActionForMethod(method string) (Action, error) {
	switch method {
	case http.MethodHead, http.MethodGet:
		return ActionRead, nil
	case http.MethodPut:
		return ActionUpdate, nil
	case http.MethodDelete:
		return ActionDelete, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
}
