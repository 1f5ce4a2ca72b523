package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyBuilder_Prefix(t *testing.T) {
	for env, want := range map[string]string{
		"production":   "prod",
		"development":  "staging",
		"staging":      "staging",
		"test":         "test",
		" Test ":       "test",
		"":             "prod",
		"qa-something": "prod",
	} {
		assert.Equal(t, want, NewKeyBuilder(env).GetPrefix(), "environment %q", env)
	}
}

func TestKeyBuilder_Keys(t *testing.T) {
	prod := NewKeyBuilder("production")
	assert.Equal(t, "prod:voting:teams:version", prod.KeyTeamsVersion())
	assert.Equal(t, "prod:voting:teams:all:v0", prod.KeyTeamsAll(0))
	assert.Equal(t, "prod:voting:teams:all:v12", prod.KeyTeamsAll(12))
	assert.Equal(t, "prod:voting:tally", prod.KeyTally())
	assert.Equal(t, "prod:anything", prod.BuildKey("anything"))

	// Same key, different environment, different namespace.
	assert.NotEqual(t, prod.KeyTally(), NewKeyBuilder("test").KeyTally())
}
