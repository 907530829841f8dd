package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/bramble/pkg/domain"
)

func TestValueTruthy(t *testing.T) {
	cases := []struct {
		name  string
		value domain.Value
		want  bool
	}{
		{"empty", domain.EmptyValue(), false},
		{"false bool", domain.BoolValue(false), false},
		{"true bool", domain.BoolValue(true), true},
		{"zero", domain.NumberValue(0), false},
		{"nonzero", domain.NumberValue(0.5), true},
		{"negative", domain.NumberValue(-1), true},
		{"string false", domain.StringValue("false"), false},
		{"string zero", domain.StringValue("0"), false},
		{"plain string", domain.StringValue("hello"), true},
		{"empty map", domain.MapValue(), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.value.Truthy())
		})
	}
}

func TestValueDisplay(t *testing.T) {
	assert.Equal(t, "", domain.EmptyValue().Display())
	assert.Equal(t, "hello", domain.StringValue("hello").Display())
	assert.Equal(t, "true", domain.BoolValue(true).Display())

	// Whole numbers render without a decimal point.
	assert.Equal(t, "5", domain.NumberValue(5).Display())
	assert.Equal(t, "0.5", domain.NumberValue(0.5).Display())

	m := domain.MapValue(
		domain.MapEntry{Name: "intro", Value: domain.BoolValue(true)},
		domain.MapEntry{Name: "score", Value: domain.NumberValue(3)},
	)
	assert.Equal(t, "{intro: true, score: 3}", m.Display())
	assert.Equal(t, "{}", domain.MapValue().Display())
}
