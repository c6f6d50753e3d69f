package interpreter

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"unicode/utf8"

	"github.com/rhino1998/rhexia/pkg/ast"
)

func (i *Interpreter) evaluate(ctx context.Context, env EnvID, expr ast.Expression) (Value, error) {
	switch expr := expr.(type) {
	case *ast.NumericExpression:
		return Numeric(expr.Value), nil
	case *ast.StringExpression:
		return String(expr.Value), nil
	case *ast.BoolExpression:
		return Bool(expr.Value), nil
	case *ast.NullExpression:
		return Null{}, nil
	case *ast.IdentifierExpression:
		return i.resolve(env, expr)
	case *ast.ListExpression:
		elems := make([]Value, 0, len(expr.Items))
		for _, item := range expr.Items {
			val, err := i.evaluate(ctx, env, item)
			if err != nil {
				return nil, err
			}

			elems = append(elems, val)
		}

		return NewList(elems...), nil
	case *ast.IndexExpression:
		list, idx, err := i.listIndex(ctx, env, expr, false)
		if err != nil {
			return nil, err
		}

		return list.Elements[idx], nil
	case *ast.AssignmentExpression:
		return i.assign(ctx, env, expr)
	case *ast.CallExpression:
		return i.evaluateCall(ctx, env, expr)
	case *ast.GetExpression:
		return i.get(ctx, env, expr)
	case *ast.ClosureExpression:
		i.envs.Capture(env)

		return &Function{
			Name:       "<closure>",
			Parameters: expr.Parameters,
			Body:       expr.Body,
			Env:        env,
		}, nil
	case *ast.StructExpression:
		return i.construct(ctx, env, expr)
	case *ast.PrefixExpression:
		operand, err := i.evaluate(ctx, env, expr.Operand)
		if err != nil {
			return nil, err
		}

		result, err := prefixOperate(expr.Operator, operand)
		if err != nil {
			return nil, expr.WrapError(err)
		}

		return result, nil
	case *ast.InfixExpression:
		left, err := i.evaluate(ctx, env, expr.Left)
		if err != nil {
			return nil, err
		}

		right, err := i.evaluate(ctx, env, expr.Right)
		if err != nil {
			return nil, err
		}

		result, err := infixOperate(left, expr.Operator, right)
		if err != nil {
			return nil, expr.WrapError(err)
		}

		return result, nil
	case *ast.PostfixExpression:
		return i.postfix(env, expr)
	default:
		return nil, expr.WrapError(fmt.Errorf("unhandled expression type: %T", expr))
	}
}

// resolve looks an identifier up as a variable, then as a function, then as
// a declared object.
func (i *Interpreter) resolve(env EnvID, expr *ast.IdentifierExpression) (Value, error) {
	if val, ok := i.envs.Get(env, expr.Name, Variables); ok {
		return val, nil
	}

	if val, ok := i.envs.Get(env, expr.Name, Functions); ok {
		return val, nil
	}

	if decl, ok := i.objects[expr.Name]; ok {
		return decl.value, nil
	}

	return nil, expr.WrapError(fmt.Errorf("%w: %s", ErrUndefinedVariable, expr.Name))
}

// listIndex evaluates the target and index of expr. Reads truncate the
// index; writes require an integral one.
func (i *Interpreter) listIndex(ctx context.Context, env EnvID, expr *ast.IndexExpression, write bool) (*List, int, error) {
	target, err := i.evaluate(ctx, env, expr.Target)
	if err != nil {
		return nil, 0, err
	}

	list, ok := target.(*List)
	if !ok {
		return nil, 0, expr.WrapError(fmt.Errorf("%w: cannot index %s", ErrIndex, target.Kind()))
	}

	if expr.Index == nil {
		return nil, 0, expr.WrapError(fmt.Errorf("%w: missing index", ErrIndex))
	}

	index, err := i.evaluate(ctx, env, expr.Index)
	if err != nil {
		return nil, 0, err
	}

	n, ok := index.(Numeric)
	if !ok {
		return nil, 0, expr.WrapError(fmt.Errorf("%w: index must be numeric, got %s", ErrIndex, index.Kind()))
	}

	if write && float64(n) != math.Trunc(float64(n)) {
		return nil, 0, expr.WrapError(fmt.Errorf("%w: index %s is not an integer", ErrIndex, n))
	}

	idx := int(n)
	if idx < 0 || idx >= len(list.Elements) {
		return nil, 0, expr.WrapError(fmt.Errorf("%w: index %d out of range [0, %d)", ErrIndex, idx, len(list.Elements)))
	}

	return list, idx, nil
}

func (i *Interpreter) assign(ctx context.Context, env EnvID, expr *ast.AssignmentExpression) (Value, error) {
	switch target := expr.Target.(type) {
	case *ast.IdentifierExpression:
		val, err := i.evaluate(ctx, env, expr.Value)
		if err != nil {
			return nil, err
		}

		err = i.assignName(env, target.Name, val)
		if err != nil {
			return nil, target.WrapError(err)
		}

		return val, nil
	case *ast.IndexExpression:
		list, idx, err := i.listIndex(ctx, env, target, true)
		if err != nil {
			return nil, err
		}

		val, err := i.evaluate(ctx, env, expr.Value)
		if err != nil {
			return nil, err
		}

		list.Elements[idx] = val

		return val, nil
	case *ast.GetExpression:
		recv, err := i.evaluate(ctx, env, target.Receiver)
		if err != nil {
			return nil, err
		}

		obj, ok := recv.(*Object)
		if !ok {
			return nil, target.WrapError(fmt.Errorf("%w: cannot set field %s on %s", ErrInvalidAssignment, target.Field, recv.Kind()))
		}

		val, err := i.evaluate(ctx, env, expr.Value)
		if err != nil {
			return nil, err
		}

		err = i.setField(obj, target.Field, val)
		if err != nil {
			return nil, target.WrapError(err)
		}

		return val, nil
	default:
		return nil, expr.WrapError(fmt.Errorf("%w: cannot assign to %s", ErrInvalidAssignment, expr.Target))
	}
}

// assignName rebinds the nearest variable called name. Failing that, a
// function value replaces the nearest function of that name, while any other
// value turns that function into a variable in the same scope so later calls
// no longer reach the old function.
func (i *Interpreter) assignName(env EnvID, name string, val Value) error {
	if i.envs.Set(env, name, val, Variables) {
		return nil
	}

	_, isFunc := val.(*Function)
	if isFunc && i.envs.Set(env, name, val, Functions) {
		return nil
	}

	if !isFunc {
		if owner, ok := i.envs.Delete(env, name, Functions); ok {
			return i.envs.Define(owner, name, val, Variables)
		}
	}

	if i.config.StrictAssignment {
		return fmt.Errorf("%w: %s", ErrUndefinedVariable, name)
	}

	return i.envs.Add(env, name, val, Variables)
}

// setField overwrites a member in the object's own scope. Fields accept any
// value; functions can only be replaced by other functions.
func (i *Interpreter) setField(obj *Object, name string, val Value) error {
	if i.envs.SetLocal(obj.Env, name, val, Variables) {
		return nil
	}

	if _, ok := i.envs.Local(obj.Env, name, Functions); ok {
		if _, ok := val.(*Function); !ok {
			return fmt.Errorf("%w: cannot assign %s to function %s.%s", ErrInvalidAssignment, val.Kind(), obj.Name, name)
		}

		i.envs.SetLocal(obj.Env, name, val, Functions)

		return nil
	}

	return fmt.Errorf("%w: object %s has no field %s", ErrInvalidAssignment, obj.Name, name)
}

func (i *Interpreter) get(ctx context.Context, env EnvID, expr *ast.GetExpression) (Value, error) {
	recv, err := i.evaluate(ctx, env, expr.Receiver)
	if err != nil {
		return nil, err
	}

	switch recv := recv.(type) {
	case *List:
		if expr.Field == "Length" {
			return Numeric(len(recv.Elements)), nil
		}
	case String:
		if expr.Field == "Length" {
			return Numeric(utf8.RuneCountInString(string(recv))), nil
		}
	case *Object:
		if val, ok := i.envs.Local(recv.Env, expr.Field, Variables); ok {
			return val, nil
		}

		if val, ok := i.envs.Local(recv.Env, expr.Field, Functions); ok {
			return val, nil
		}
	}

	return nil, expr.WrapError(fmt.Errorf("%w: %s has no member %s", ErrUnhandledGet, recv.Kind(), expr.Field))
}

func (i *Interpreter) postfix(env EnvID, expr *ast.PostfixExpression) (Value, error) {
	ident, ok := expr.Operand.(*ast.IdentifierExpression)
	if !ok {
		return nil, expr.WrapError(fmt.Errorf("%w: operand of %s must be a variable, got %s", ErrUnhandledPostfix, expr.Operator, expr.Operand))
	}

	val, ok := i.envs.Get(env, ident.Name, Variables)
	if !ok {
		return nil, ident.WrapError(fmt.Errorf("%w: %s", ErrUndefinedVariable, ident.Name))
	}

	n, ok := val.(Numeric)
	if !ok {
		return nil, expr.WrapError(fmt.Errorf("%w: %s%s", ErrUnhandledPostfix, val.Kind(), expr.Operator))
	}

	delta, err := expr.Operator.PostfixDelta()
	if err != nil {
		return nil, expr.WrapError(fmt.Errorf("%w: %w", ErrUnhandledPostfix, err))
	}

	i.envs.Set(env, ident.Name, n+Numeric(delta), Variables)

	return n, nil
}

// construct instantiates a declared object and overwrites the listed fields.
// Field values are evaluated in the caller's scope before instantiation.
func (i *Interpreter) construct(ctx context.Context, env EnvID, expr *ast.StructExpression) (Value, error) {
	decl, ok := i.objects[expr.Name]
	if !ok {
		return nil, expr.WrapError(fmt.Errorf("%w: %s", ErrUndefinedObject, expr.Name))
	}

	values := make(map[string]Value, len(expr.FieldNames))
	for _, name := range expr.FieldNames {
		if _, ok := decl.stmt.Fields[name]; !ok {
			return nil, expr.WrapError(fmt.Errorf("%w: object %s has no field %s", ErrInvalidAssignment, expr.Name, name))
		}

		val, err := i.evaluate(ctx, env, expr.Fields[name])
		if err != nil {
			return nil, err
		}

		values[name] = val
	}

	obj, err := i.instantiate(ctx, env, decl.stmt)
	if err != nil {
		return nil, err
	}

	for _, name := range expr.FieldNames {
		err := i.setField(obj, name, values[name])
		if err != nil {
			return nil, expr.WrapError(err)
		}
	}

	return obj, nil
}

// callee resolves the target of a call. A bare name is looked up as a
// function first and then as a variable holding a callable value.
func (i *Interpreter) callee(ctx context.Context, env EnvID, expr ast.Expression) (Value, error) {
	ident, ok := expr.(*ast.IdentifierExpression)
	if !ok {
		return i.evaluate(ctx, env, expr)
	}

	if val, ok := i.envs.Get(env, ident.Name, Functions); ok {
		return val, nil
	}

	if val, ok := i.envs.Get(env, ident.Name, Variables); ok {
		return val, nil
	}

	return nil, ident.WrapError(fmt.Errorf("%w: %s", ErrUndefinedFunction, ident.Name))
}

func (i *Interpreter) evaluateCall(ctx context.Context, env EnvID, expr *ast.CallExpression) (Value, error) {
	callee, err := i.callee(ctx, env, expr.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(expr.Arguments))
	for _, arg := range expr.Arguments {
		val, err := i.evaluate(ctx, env, arg)
		if err != nil {
			return nil, err
		}

		args = append(args, val)
	}

	result, err := i.Call(ctx, callee, args...)
	if err != nil {
		return nil, expr.WrapError(err)
	}

	return result, nil
}

// Call invokes a Function or Native value with already evaluated arguments.
func (i *Interpreter) Call(ctx context.Context, callee Value, args ...Value) (Value, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	switch fn := callee.(type) {
	case *Native:
		result, err := fn.Call(args)
		if err != nil {
			return nil, err
		}

		if result == nil {
			return Null{}, nil
		}

		return result, nil
	case *Function:
		return i.callFunction(ctx, fn, args)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotCallable, callee.Kind())
	}
}

func (i *Interpreter) callFunction(ctx context.Context, fn *Function, args []Value) (Value, error) {
	if len(args) != len(fn.Parameters) {
		return nil, fmt.Errorf("%w: %s expects %d arguments, got %d", ErrArity, fn.Name, len(fn.Parameters), len(args))
	}

	if len(i.frames) >= i.config.MaxCallDepth {
		return nil, fmt.Errorf("%w: %d nested calls", ErrCallDepth, len(i.frames))
	}

	scope := i.envs.New(fn.Env, fn.Name)
	defer i.envs.Release(scope)

	for idx, param := range fn.Parameters {
		err := i.envs.Add(scope, param, args[idx], Variables)
		if err != nil {
			return nil, fmt.Errorf("binding parameter of %s: %w", fn.Name, err)
		}
	}

	i.frames = append(i.frames, fn.Name)
	defer func() {
		i.frames = i.frames[:len(i.frames)-1]
	}()

	if i.logger.Enabled(ctx, slog.LevelDebug) {
		i.logger.Debug("call",
			slog.String("function", fn.Name),
			slog.Int("args", len(args)),
			slog.Int("depth", len(i.frames)),
		)
	}

	c, err := i.executeStatements(ctx, scope, fn.Body)
	if err != nil {
		return nil, i.runtimeError(err)
	}

	return c.value, nil
}
