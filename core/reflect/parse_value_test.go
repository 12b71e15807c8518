package reflect

import (
	"errors"
	"math/big"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type upper struct {
	s string
}

func (u *upper) DecodeFromBytes(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty")
	}
	u.s = strings.ToUpper(string(b))
	return nil
}

type positive int

func (p positive) Check() error {
	if p <= 0 {
		return errors.New("not positive")
	}
	return nil
}

func TestParseValue(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	wire, err := proto.Marshal(wrapperspb.Int64(5))
	require.NoError(t, err)

	testCases := []struct {
		name    string
		in      string
		typ     reflect.Type
		check   func(t *testing.T, v any)
		wantErr bool
	}{
		{
			name: "string",
			in:   "hello",
			typ:  reflect.TypeOf(""),
			check: func(t *testing.T, v any) {
				assert.Equal(t, "hello", v)
			},
		},
		{
			name: "string pointer",
			in:   "hello",
			typ:  reflect.TypeOf((*string)(nil)),
			check: func(t *testing.T, v any) {
				assert.Equal(t, "hello", *v.(*string))
			},
		},
		{
			name: "int",
			in:   "42",
			typ:  reflect.TypeOf(0),
			check: func(t *testing.T, v any) {
				assert.Equal(t, 42, v)
			},
		},
		{
			name: "int pointer",
			in:   "7",
			typ:  reflect.TypeOf((*int)(nil)),
			check: func(t *testing.T, v any) {
				assert.Equal(t, 7, *v.(*int))
			},
		},
		{
			name: "float slice",
			in:   "[1, 2.5]",
			typ:  reflect.TypeOf([]float64{}),
			check: func(t *testing.T, v any) {
				assert.Equal(t, []float64{1, 2.5}, v)
			},
		},
		{
			name: "big int",
			in:   "123456789012345678901234567890",
			typ:  reflect.TypeOf((*big.Int)(nil)),
			check: func(t *testing.T, v any) {
				assert.Equal(t, "123456789012345678901234567890", v.(*big.Int).String())
			},
		},
		{
			name: "text unmarshaler",
			in:   ts.Format(time.RFC3339),
			typ:  reflect.TypeOf(time.Time{}),
			check: func(t *testing.T, v any) {
				assert.True(t, ts.Equal(v.(time.Time)))
			},
		},
		{
			name: "protojson wrapper",
			in:   `"abc"`,
			typ:  reflect.TypeOf((*wrapperspb.StringValue)(nil)),
			check: func(t *testing.T, v any) {
				assert.Equal(t, "abc", v.(*wrapperspb.StringValue).GetValue())
			},
		},
		{
			name: "protojson timestamp",
			in:   `"2024-01-02T03:04:05Z"`,
			typ:  reflect.TypeOf((*timestamppb.Timestamp)(nil)),
			check: func(t *testing.T, v any) {
				assert.True(t, ts.Equal(v.(*timestamppb.Timestamp).AsTime()))
			},
		},
		{
			name: "proto wire",
			in:   string(wire),
			typ:  reflect.TypeOf((*wrapperspb.Int64Value)(nil)),
			check: func(t *testing.T, v any) {
				assert.Equal(t, int64(5), v.(*wrapperspb.Int64Value).GetValue())
			},
		},
		{
			name: "bytes decoder",
			in:   "abc",
			typ:  reflect.TypeOf(upper{}),
			check: func(t *testing.T, v any) {
				assert.Equal(t, upper{s: "ABC"}, v)
			},
		},
		{name: "not a number", in: "abc", typ: reflect.TypeOf(0), wantErr: true},
		{name: "fraction for int", in: "1.5", typ: reflect.TypeOf(0), wantErr: true},
		{name: "decoder failure", in: "", typ: reflect.TypeOf(upper{}), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := ParseValue(tc.in, tc.typ)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgumentValue)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.typ, v.Type())
			tc.check(t, v.Interface())
		})
	}
}

func TestValueError(t *testing.T) {
	cause := errors.New("cause")
	err := NewValueError("x", reflect.TypeOf(0), cause)

	require.ErrorIs(t, err, ErrInvalidArgumentValue)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid argument value: 'x': for type 'int': 'cause'", err.Error())

	err = NewValueError("x", reflect.TypeOf(0), nil)
	assert.Equal(t, "invalid argument value: 'x': for type 'int'", err.Error())
}

func TestParseArgumentsTable(t *testing.T) {
	intType := reflect.TypeOf(0)
	stringType := reflect.TypeOf("")
	ints := reflect.TypeOf([]int{})

	testCases := []struct {
		name     string
		params   []reflect.Type
		variadic bool
		args     []string
		want     []any
		wantErr  error
	}{
		{name: "fixed", params: []reflect.Type{stringType, intType}, args: []string{"ada", "36"}, want: []any{"ada", 36}},
		{name: "variadic", params: []reflect.Type{stringType, ints}, variadic: true, args: []string{"s", "1", "2"}, want: []any{"s", 1, 2}},
		{name: "variadic empty", params: []reflect.Type{ints}, variadic: true, args: []string{}, want: []any{}},
		{name: "count", params: []reflect.Type{intType}, args: []string{}, wantErr: ErrIncorrectArgumentCount},
		{name: "variadic count", params: []reflect.Type{stringType, ints}, variadic: true, args: []string{}, wantErr: ErrIncorrectArgumentCount},
		{name: "parse failure", params: []reflect.Type{intType}, args: []string{"x"}, wantErr: ErrInvalidArgumentValue},
		{name: "checked", params: []reflect.Type{reflect.TypeOf(positive(0))}, args: []string{"3"}, want: []any{positive(3)}},
		{name: "check failure", params: []reflect.Type{reflect.TypeOf(positive(0))}, args: []string{"-3"}, wantErr: ErrInvalidArgumentValue},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseArguments(tc.params, tc.variadic, tc.args)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
