package repl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echo(_ context.Context, args []string) Result {
	return Text(joinArgs(args))
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		out += a
	}
	return out
}

func TestRegisterValidatesName(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{"", "two words", "tab\tname"} {
		err := reg.RegisterFunc(name, echo)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
	assert.ErrorIs(t, reg.Register("x", nil), ErrNilHandler)
	assert.ErrorIs(t, reg.RegisterFunc("x", nil), ErrNilHandler)
	assert.Empty(t, reg.Names())
}

func TestRegisterOverwritesSilently(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterFunc("greet", func(context.Context, []string) Result { return Text("hi") }))
	require.NoError(t, reg.RegisterFunc("greet", func(context.Context, []string) Result { return Text("hello") }))

	h, ok := reg.Lookup("greet")
	require.True(t, ok)
	assert.Equal(t, "hello", h.Execute(context.Background(), nil).Message)
	assert.Equal(t, []string{"greet"}, reg.Names())
}

func TestLookupIsCaseSensitive(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterFunc("view", echo))

	_, ok := reg.Lookup("View")
	assert.False(t, ok)
	_, ok = reg.Lookup("view")
	assert.True(t, ok)
}

func TestRegisterAlias(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterFunc("echo", echo))

	t.Run("unknown target", func(t *testing.T) {
		assert.ErrorIs(t, reg.RegisterAlias("e", "missing"), ErrUnknownTarget)
	})

	t.Run("resolves at call time", func(t *testing.T) {
		require.NoError(t, reg.RegisterAlias("e", "echo"))
		h, _ := reg.Lookup("e")
		assert.Equal(t, "a b", h.Execute(context.Background(), []string{"a", "b"}).Message)

		require.NoError(t, reg.RegisterFunc("echo", func(context.Context, []string) Result { return Text("replaced") }))
		assert.Equal(t, "replaced", h.Execute(context.Background(), nil).Message)

		b, ok := reg.Binding("e")
		require.True(t, ok)
		assert.Equal(t, KindAlias, b.Kind)
		assert.Equal(t, "echo", b.Target)
	})

	t.Run("self reference", func(t *testing.T) {
		assert.ErrorIs(t, reg.RegisterAlias("echo", "echo"), ErrAliasCycle)
	})

	t.Run("indirect cycle", func(t *testing.T) {
		require.NoError(t, reg.RegisterAlias("a1", "echo"))
		require.NoError(t, reg.RegisterAlias("a2", "a1"))
		assert.ErrorIs(t, reg.RegisterAlias("a1", "a2"), ErrAliasCycle)
	})
}

func TestRegisterExpression(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.RegisterExpression("shout", `upper(join(args, " "))`))
	h, ok := reg.Lookup("shout")
	require.True(t, ok)
	assert.Equal(t, "HELLO WORLD", h.Execute(context.Background(), []string{"hello", "world"}).Message)

	b, _ := reg.Binding("shout")
	assert.Equal(t, KindExpression, b.Kind)
	assert.Equal(t, "expr", b.Kind.String())

	assert.ErrorIs(t, reg.RegisterExpression("bad", "1 +"), ErrInvalidExpression)
	assert.ErrorIs(t, reg.RegisterExpression("empty", ""), ErrInvalidExpression)
	_, ok = reg.Lookup("bad")
	assert.False(t, ok)
}

func TestExpressionResults(t *testing.T) {
	tests := []struct {
		name   string
		source string
		args   []string
		want   Result
	}{
		{name: "argc", source: "argc", args: []string{"a", "b"}, want: Text("2")},
		{name: "string", source: `"static"`, want: Text("static")},
		{name: "table", source: `[["a", "b"], ["c", "d"]]`, want: Table([][]string{{"a", "b"}, {"c", "d"}}, false)},
		{name: "flat list", source: `[1, 2, 3]`, want: Text("1 2 3")},
		{name: "nil", source: "nil", want: Text("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := compileExpression(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.Execute(context.Background(), tt.args))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "builtin", KindBuiltin.String())
	assert.Equal(t, "alias", KindAlias.String())
	assert.Equal(t, "expr", KindExpression.String())
}
