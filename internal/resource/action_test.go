package resource

import (
	"errors"
	"testing"
)

func TestActionForMethod_ReadMethods(t *testing.T) {
	for _, m := range []string{"HEAD", "GET"} {
		a, err := ActionForMethod(m)
		if err != nil {
			t.Fatalf("ActionForMethod(%s) error: %v", m, err)
		}
		if a != ActionRead {
			t.Fatalf("ActionForMethod(%s) = %s, want read", m, a)
		}
	}
}

func TestActionForMethod_Put(t *testing.T) {
	a, err := ActionForMethod("PUT")
	if err != nil {
		t.Fatalf("ActionForMethod(PUT) error: %v", err)
	}
	if a != ActionUpdate {
		t.Fatalf("ActionForMethod(PUT) = %s, want update", a)
	}
}

func TestActionForMethod_Delete(t *testing.T) {
	a, err := ActionForMethod("DELETE")
	if err != nil {
		t.Fatalf("ActionForMethod(DELETE) error: %v", err)
	}
	if a != ActionDelete {
		t.Fatalf("ActionForMethod(DELETE) = %s, want delete", a)
	}
}

func TestActionForMethod_Unsupported(t *testing.T) {
	for _, m := range []string{"PATCH", "POST", "OPTIONS", "get", ""} {
		_, err := ActionForMethod(m)
		if !errors.Is(err, ErrUnsupportedMethod) {
			t.Fatalf("ActionForMethod(%q) error = %v, want ErrUnsupportedMethod", m, err)
		}
	}
}
