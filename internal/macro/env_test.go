package macro

import (
	"testing"

	"github.com/SonOfLilit/kleenexp/internal/ir"
)

func TestEnvGetMissing(t *testing.T) {
	var env *Env
	if _, ok := env.Get("x"); ok {
		t.Fatalf("empty env should not resolve any name")
	}
}

func TestEnvPushAndGet(t *testing.T) {
	var env *Env
	env = env.Push(map[string]ir.Node{"a": ir.Literal("1")})
	v, ok := env.Get("a")
	if !ok || v != ir.Literal("1") {
		t.Fatalf("got %v, %v; want Literal(1), true", v, ok)
	}
}

func TestEnvShadowing(t *testing.T) {
	var env *Env
	env = env.Push(map[string]ir.Node{"a": ir.Literal("outer")})
	inner := env.Push(map[string]ir.Node{"a": ir.Literal("inner")})

	v, _ := inner.Get("a")
	if v != ir.Literal("inner") {
		t.Errorf("inner scope: got %v, want Literal(inner)", v)
	}
	v, _ = env.Get("a")
	if v != ir.Literal("outer") {
		t.Errorf("outer scope unaffected by child push: got %v, want Literal(outer)", v)
	}
}

func TestEnvPushEmptyIsNoOp(t *testing.T) {
	var env *Env
	env = env.Push(map[string]ir.Node{"a": ir.Literal("1")})
	same := env.Push(nil)
	if same != env {
		t.Errorf("pushing an empty map should return the same *Env")
	}
}

func TestEnvHasLocal(t *testing.T) {
	var env *Env
	env = env.Push(map[string]ir.Node{"a": ir.Literal("1")})
	inner := env.Push(map[string]ir.Node{"b": ir.Literal("2")})
	if !inner.HasLocal("b") {
		t.Errorf("HasLocal(b) should be true in the scope that binds it")
	}
	if inner.HasLocal("a") {
		t.Errorf("HasLocal(a) should be false: a is bound in the parent, not this scope")
	}
}
