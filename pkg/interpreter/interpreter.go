package interpreter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/rhino1998/rhexia/pkg/ast"
	"github.com/rhino1998/rhexia/pkg/parser"
)

// completion is the outcome of executing a statement. A returned completion
// unwinds every enclosing block up to the nearest function call.
type completion struct {
	value    Value
	returned bool
}

func normal(v Value) completion {
	return completion{value: v}
}

type declaration struct {
	stmt  *ast.ObjectStatement
	value *Object
}

// Interpreter executes programs against a persistent global scope, so
// successive Execute calls observe each other's bindings.
type Interpreter struct {
	logger *slog.Logger
	config Config

	envs    *Environments
	global  EnvID
	objects map[string]declaration

	frames []string
}

func New(logger *slog.Logger, config Config) (*Interpreter, error) {
	err := config.Validate(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to validate interpreter config: %w", err)
	}

	envs := NewEnvironments(nativeValues(config.Natives))

	return &Interpreter{
		logger:  logger,
		config:  config,
		envs:    envs,
		global:  envs.New(NoEnv, "<global>"),
		objects: make(map[string]declaration),
	}, nil
}

// Environments exposes the scope arena, mainly for inspection in tests.
func (i *Interpreter) Environments() *Environments {
	return i.envs
}

// Global returns the value of a global variable, falling back to global
// functions.
func (i *Interpreter) Global(name string) (Value, bool) {
	v, ok := i.envs.Get(i.global, name, Variables)
	if ok {
		return v, true
	}

	return i.envs.Get(i.global, name, Functions)
}

// Execute runs the program's statements in order in the global scope and
// returns the value of the last statement, or the value of a top level
// return.
func (i *Interpreter) Execute(ctx context.Context, prog *ast.Program) (Value, error) {
	var result Value = Null{}
	for _, stmt := range prog.Statements {
		c, err := i.executeStatement(ctx, i.global, stmt)
		if err != nil {
			return nil, i.runtimeError(err)
		}

		result = c.value
		if c.returned {
			break
		}
	}

	i.logger.Debug("execution finished",
		slog.String("file", prog.File),
		slog.Int("live_scopes", i.envs.Live()),
	)

	return result, nil
}

// ExecuteString parses src and executes it.
func (i *Interpreter) ExecuteString(ctx context.Context, file, src string) (Value, error) {
	prog, err := parser.ParseString(file, src)
	if err != nil {
		return nil, err
	}

	return i.Execute(ctx, prog)
}

func (i *Interpreter) runtimeError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		return err
	}

	return &RuntimeError{Err: err, Trace: i.trace()}
}

func (i *Interpreter) trace() []string {
	trace := slices.Clone(i.frames)
	slices.Reverse(trace)

	return trace
}

func (i *Interpreter) executeStatements(ctx context.Context, env EnvID, body []ast.Statement) (completion, error) {
	result := normal(Null{})
	for _, stmt := range body {
		c, err := i.executeStatement(ctx, env, stmt)
		if err != nil {
			return completion{}, err
		}

		if c.returned {
			return c, nil
		}

		result = c
	}

	return result, nil
}

func (i *Interpreter) executeStatement(ctx context.Context, env EnvID, stmt ast.Statement) (completion, error) {
	switch stmt := stmt.(type) {
	case *ast.VarStatement:
		return normal(Null{}), i.declare(ctx, env, stmt)
	case *ast.FunctionStatement:
		fn := &Function{
			Name:       stmt.Name,
			Parameters: stmt.Parameters,
			Body:       stmt.Body,
			Env:        env,
		}
		i.envs.Capture(env)

		err := i.envs.Define(env, stmt.Name, fn, Functions)
		if err != nil {
			return completion{}, stmt.WrapError(err)
		}

		return normal(Null{}), nil
	case *ast.ForStatement:
		return i.executeFor(ctx, env, stmt)
	case *ast.WhileStatement:
		for {
			err := ctx.Err()
			if err != nil {
				return completion{}, err
			}

			ok, err := i.condition(ctx, env, stmt.Condition)
			if err != nil {
				return completion{}, err
			}

			if !ok {
				return normal(Null{}), nil
			}

			c, err := i.executeStatements(ctx, env, stmt.Body)
			if err != nil {
				return completion{}, err
			}

			if c.returned {
				return c, nil
			}
		}
	case *ast.IfElseStatement:
		ok, err := i.condition(ctx, env, stmt.Condition)
		if err != nil {
			return completion{}, err
		}

		if ok {
			return i.executeStatements(ctx, env, stmt.Then)
		}

		if len(stmt.Else) == 0 {
			return normal(Null{}), nil
		}

		return i.executeStatements(ctx, env, stmt.Else)
	case *ast.ReturnStatement:
		if stmt.Expression == nil {
			return completion{value: Null{}, returned: true}, nil
		}

		val, err := i.evaluate(ctx, env, stmt.Expression)
		if err != nil {
			return completion{}, err
		}

		return completion{value: val, returned: true}, nil
	case *ast.ObjectStatement:
		return normal(Null{}), i.declareObject(ctx, env, stmt)
	case *ast.ExpressionStatement:
		val, err := i.evaluate(ctx, env, stmt.Expression)
		if err != nil {
			return completion{}, err
		}

		return normal(val), nil
	default:
		return completion{}, stmt.WrapError(fmt.Errorf("unhandled statement type: %T", stmt))
	}
}

// declare binds a var statement in env. Function values are bound in the
// function namespace so they can be called by name. Executing the same
// declaration again, as a loop body does, rebinds the name.
func (i *Interpreter) declare(ctx context.Context, env EnvID, stmt *ast.VarStatement) error {
	val, err := i.evaluate(ctx, env, stmt.Init)
	if err != nil {
		return err
	}

	ns := Variables
	if _, ok := val.(*Function); ok {
		ns = Functions
	}

	err = i.envs.Define(env, stmt.Name, val, ns)
	if err != nil {
		return stmt.WrapError(err)
	}

	return nil
}

// executeFor runs the init statement once and then the whole loop in env, so
// the loop variable stays visible after the loop.
func (i *Interpreter) executeFor(ctx context.Context, env EnvID, stmt *ast.ForStatement) (completion, error) {
	err := i.declare(ctx, env, stmt.Init)
	if err != nil {
		return completion{}, err
	}

	for {
		err := ctx.Err()
		if err != nil {
			return completion{}, err
		}

		ok, err := i.condition(ctx, env, stmt.Condition)
		if err != nil {
			return completion{}, err
		}

		if !ok {
			return normal(Null{}), nil
		}

		c, err := i.executeStatements(ctx, env, stmt.Body)
		if err != nil {
			return completion{}, err
		}

		if c.returned {
			return c, nil
		}

		_, err = i.evaluate(ctx, env, stmt.Increment)
		if err != nil {
			return completion{}, err
		}
	}
}

func (i *Interpreter) condition(ctx context.Context, env EnvID, expr ast.Expression) (bool, error) {
	val, err := i.evaluate(ctx, env, expr)
	if err != nil {
		return false, err
	}

	ok, err := boolOrFail(val)
	if err != nil {
		return false, expr.WrapError(fmt.Errorf("condition: %w", err))
	}

	return ok, nil
}

// declareObject populates a new scope with the object's fields and
// functions and records the object in the registry.
func (i *Interpreter) declareObject(ctx context.Context, env EnvID, stmt *ast.ObjectStatement) error {
	if _, ok := i.objects[stmt.Name]; ok {
		return stmt.WrapError(fmt.Errorf("%w: object %s is already defined", ErrRedeclared, stmt.Name))
	}

	obj, err := i.instantiate(ctx, env, stmt)
	if err != nil {
		return err
	}

	i.objects[stmt.Name] = declaration{stmt: stmt, value: obj}

	i.logger.Debug("registered object",
		slog.String("name", stmt.Name),
		slog.Any("fields", stmt.FieldNames),
		slog.Any("functions", stmt.FunctionNames),
	)

	return nil
}

func (i *Interpreter) instantiate(ctx context.Context, env EnvID, stmt *ast.ObjectStatement) (*Object, error) {
	scope := i.envs.New(env, stmt.Name)
	i.envs.Capture(scope)

	for _, name := range stmt.FieldNames {
		err := i.declare(ctx, scope, stmt.Fields[name])
		if err != nil {
			return nil, err
		}
	}

	for _, name := range stmt.FunctionNames {
		_, err := i.executeStatement(ctx, scope, stmt.Functions[name])
		if err != nil {
			return nil, err
		}
	}

	return &Object{
		Name:      stmt.Name,
		Fields:    stmt.FieldNames,
		Functions: stmt.FunctionNames,
		Env:       scope,
	}, nil
}
