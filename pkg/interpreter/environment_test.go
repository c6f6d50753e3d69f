package interpreter_test

import (
	"errors"
	"testing"

	"github.com/rhino1998/rhexia/pkg/interpreter"
	"github.com/stretchr/testify/require"
)

func TestEnvironments_Namespaces(t *testing.T) {
	r := require.New(t)

	envs := interpreter.NewEnvironments(nil)
	root := envs.New(interpreter.NoEnv, "root")

	r.NoError(envs.Add(root, "x", interpreter.Numeric(1), interpreter.Variables))
	r.NoError(envs.Add(root, "x", interpreter.String("fn"), interpreter.Functions))

	v, ok := envs.Get(root, "x", interpreter.Variables)
	r.True(ok)
	r.Equal(interpreter.Numeric(1), v)

	v, ok = envs.Get(root, "x", interpreter.Functions)
	r.True(ok)
	r.Equal(interpreter.String("fn"), v)

	err := envs.Add(root, "x", interpreter.Numeric(2), interpreter.Variables)
	r.True(errors.Is(err, interpreter.ErrRedeclared))
}

func TestEnvironments_Chain(t *testing.T) {
	r := require.New(t)

	native := &interpreter.Native{Name: "print"}
	envs := interpreter.NewEnvironments(map[string]interpreter.Value{"print": native})

	root := envs.New(interpreter.NoEnv, "root")
	child := envs.New(root, "child")
	r.Equal(root, envs.Parent(child))
	r.Equal("child", envs.Name(child))

	r.NoError(envs.Add(root, "a", interpreter.Numeric(1), interpreter.Variables))
	r.NoError(envs.Add(root, "f", interpreter.Null{}, interpreter.Functions))

	r.True(envs.Set(child, "a", interpreter.Numeric(2), interpreter.Variables))
	v, _ := envs.Get(root, "a", interpreter.Variables)
	r.Equal(interpreter.Numeric(2), v)

	_, ok := envs.Local(child, "a", interpreter.Variables)
	r.False(ok)
	r.False(envs.SetLocal(child, "a", interpreter.Numeric(3), interpreter.Variables))

	_, ok = envs.Get(child, "f", interpreter.Functions)
	r.True(ok)

	v, ok = envs.Get(child, "print", interpreter.Functions)
	r.True(ok)
	r.Same(native, v)

	_, ok = envs.Get(child, "print", interpreter.Variables)
	r.False(ok)

	r.False(envs.Set(child, "missing", interpreter.Null{}, interpreter.Variables))
}

func TestEnvironments_Release(t *testing.T) {
	r := require.New(t)

	envs := interpreter.NewEnvironments(nil)
	root := envs.New(interpreter.NoEnv, "root")

	call := envs.New(root, "call")
	r.Equal(2, envs.Live())

	envs.Release(call)
	r.Equal(1, envs.Live())

	_, ok := envs.Get(call, "anything", interpreter.Variables)
	r.False(ok)

	reused := envs.New(root, "call")
	r.Equal(call, reused)

	block := envs.New(reused, "block")
	envs.Capture(block)

	envs.Release(block)
	envs.Release(reused)
	r.Equal(3, envs.Live())
}

func TestEnvironments_DefineDelete(t *testing.T) {
	r := require.New(t)

	native := &interpreter.Native{Name: "print"}
	envs := interpreter.NewEnvironments(map[string]interpreter.Value{"print": native})

	root := envs.New(interpreter.NoEnv, "root")
	child := envs.New(root, "child")

	r.NoError(envs.Define(root, "x", interpreter.Numeric(1), interpreter.Variables))
	r.NoError(envs.Define(root, "x", interpreter.Numeric(2), interpreter.Variables))
	v, _ := envs.Local(root, "x", interpreter.Variables)
	r.Equal(interpreter.Numeric(2), v)

	r.NoError(envs.Define(root, "f", interpreter.Null{}, interpreter.Functions))
	owner, ok := envs.Delete(child, "f", interpreter.Functions)
	r.True(ok)
	r.Equal(root, owner)

	_, ok = envs.Get(child, "f", interpreter.Functions)
	r.False(ok)

	_, ok = envs.Delete(child, "print", interpreter.Functions)
	r.False(ok)

	_, ok = envs.Get(child, "print", interpreter.Functions)
	r.True(ok)
}
