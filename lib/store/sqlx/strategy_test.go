package sqlx

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStrategy_Verb(t *testing.T) {
	tests := []struct {
		strategy Strategy
		verb     string
	}{
		{DefaultStrategy, "INSERT INTO"},
		{"default", "INSERT INTO"},
		{ReplaceStrategy, "REPLACE INTO"},
		{"RePlAcE", "REPLACE INTO"},
		{IgnoreStrategy, "INSERT IGNORE"},
		{"IGNORE", "INSERT IGNORE"},
	}

	for _, test := range tests {
		t.Run(string(test.strategy), func(t *testing.T) {
			verb, err := test.strategy.Verb()
			assert.Nil(t, err)
			assert.Equal(t, test.verb, verb)
		})
	}
}

func TestStrategy_VerbUnknown(t *testing.T) {
	verb, err := Strategy("bogus").Verb()
	assert.Empty(t, verb)
	assert.Contains(t, err.Error(), "bogus")

	strategyErr, ok := errors.Cause(err).(*StrategyError)
	assert.True(t, ok)
	assert.Equal(t, Strategy("bogus"), strategyErr.Strategy)
}
