package config

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoZeroFields(t *testing.T) {
	cfg := Default()

	for _, field := range visit(newVar(*cfg), "Config", false) {
		assert.Fail(t, "zero-value field", field)
	}
}

type variable struct {
	Type  reflect.Type
	Value reflect.Value
}

func newVar(a any) variable {
	return variable{reflect.TypeOf(a), reflect.ValueOf(a)}
}

func visit(a variable, name string, nullable bool) (fields []string) {
	if a.Type.Kind() == reflect.Struct {
		for field := range a.Value.NumField() {
			v1 := variable{a.Type.Field(field).Type, a.Value.Field(field)}
			fieldname := a.Type.Field(field).Name
			isNullable := a.Type.Field(field).Tag.Get("test") == "nullable"
			fields = append(fields, visit(v1, name+"."+fieldname, isNullable)...)
		}

		return fields
	}

	if a.Value.IsZero() && !nullable {
		return []string{name}
	}

	return nil
}

func TestLimits(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		limits := Default().Limits()
		require.Equal(t, 2*1024, limits.MaxURLSize)
		require.Equal(t, 4*1024, limits.MaxFieldSize)
		require.Equal(t, uint64(1024*1024), limits.MaxBodySize)
	})

	t.Run("lowering ceilings lowers prealloc", func(t *testing.T) {
		cfg := Default()
		cfg.SetLimits(Limits{MaxURLSize: 16, MaxFieldSize: 8, MaxBodySize: 10})
		require.Equal(t, Limits{MaxURLSize: 16, MaxFieldSize: 8, MaxBodySize: 10}, cfg.Limits())
		require.Equal(t, 16, cfg.URI.BufferSize.Default)
		require.Equal(t, 8, cfg.Headers.FieldSize.Default)
	})

	t.Run("raising ceilings keeps prealloc", func(t *testing.T) {
		cfg := Default()
		cfg.SetLimits(Limits{MaxURLSize: 1 << 20, MaxFieldSize: 1 << 20, MaxBodySize: 1 << 30})
		require.Equal(t, 256, cfg.URI.BufferSize.Default)
		require.Equal(t, 64, cfg.Headers.FieldSize.Default)
	})
}
