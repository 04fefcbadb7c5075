package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_Success(t *testing.T) {
	env := Run(func() (any, error) {
		return map[string]int{"count": 3}, nil
	})

	assert.True(t, env.Success)
	assert.Equal(t, map[string]int{"count": 3}, env.Result)
	assert.Empty(t, env.Error)
}

func TestRun_ErrorBecomesFailureEnvelope(t *testing.T) {
	env := Run(func() (any, error) {
		return nil, errors.New("Odoo Server Error: access denied")
	})

	assert.False(t, env.Success)
	assert.Nil(t, env.Result)
	assert.Equal(t, "Odoo Server Error: access denied", env.Error)
}

func TestRun_PanicBecomesFailureEnvelope(t *testing.T) {
	env := Run(func() (any, error) {
		panic("unexpected payload shape")
	})

	assert.False(t, env.Success)
	assert.Equal(t, "unexpected payload shape", env.Error)
}
