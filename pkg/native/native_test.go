package native

import (
	"errors"
	"testing"
)

func withInvoker(t *testing.T, inv Invoker) {
	t.Helper()
	prev := SetInvoker(inv)
	t.Cleanup(func() { SetInvoker(prev) })
}

func TestInvokeConvertsResult(t *testing.T) {
	var gotHash uint64
	var gotArgs []any
	withInvoker(t, InvokerFunc(func(hash uint64, args []any) (any, error) {
		gotHash, gotArgs = hash, args
		if z, ok := args[2].(*float32); ok {
			*z = 72.5
		}
		return true, nil
	}))

	z := new(float32)
	ok := Invoke[bool](0xC906A7DAB05C8D2B, float32(1), float32(2), z)
	if !ok {
		t.Error("expected true result")
	}
	if gotHash != 0xC906A7DAB05C8D2B {
		t.Errorf("expected hash forwarded, got %#x", gotHash)
	}
	if len(gotArgs) != 3 {
		t.Errorf("expected 3 args, got %d", len(gotArgs))
	}
	if *z != 72.5 {
		t.Errorf("expected output written through, got %v", *z)
	}
}

func TestInvokeNilResultIsZero(t *testing.T) {
	withInvoker(t, InvokerFunc(func(uint64, []any) (any, error) { return nil, nil }))
	if v := Invoke[int32](1); v != 0 {
		t.Errorf("expected zero value, got %d", v)
	}
	Call(1)
}

func TestTryInvokeErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		inv  Invoker
	}{
		{"no invoker", nil},
		{"call fails", InvokerFunc(func(uint64, []any) (any, error) { return nil, boom })},
		{"wrong type", InvokerFunc(func(uint64, []any) (any, error) { return "text", nil })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withInvoker(t, tt.inv)
			_, err := TryInvoke[int32](0x10)
			var ce *CallError
			if !errors.As(err, &ce) {
				t.Fatalf("expected CallError, got %v", err)
			}
			if ce.Hash != 0x10 {
				t.Errorf("expected hash 0x10, got %#x", ce.Hash)
			}
		})
	}

	withInvoker(t, InvokerFunc(func(uint64, []any) (any, error) { return nil, boom }))
	if _, err := TryInvoke[int32](0x10); !errors.Is(err, boom) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestMemoryViews(t *testing.T) {
	buf := make([]byte, 24)
	Write[int32](buf, 8, -7)
	Write(buf, 16, float32(1.5))

	if v := Read[int32](buf, 8); v != -7 {
		t.Errorf("expected -7, got %d", v)
	}
	if v := Read[float32](buf, 16); v != 1.5 {
		t.Errorf("expected 1.5, got %v", v)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range view")
		}
	}()
	At[int64](buf, 20)
}
