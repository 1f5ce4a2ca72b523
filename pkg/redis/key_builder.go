package redis

import (
	"fmt"
	"strings"
)

// envPrefixes maps ENVIRONMENT values onto key namespaces. Anything not
// listed shares the production namespace.
var envPrefixes = map[string]string{
	"development": "staging",
	"staging":     "staging",
	"test":        "test",
}

// KeyBuilder namespaces keys by environment so deployments can share one
// Redis without reading each other's listings or tallies.
type KeyBuilder struct {
	prefix string
}

func NewKeyBuilder(environment string) *KeyBuilder {
	prefix, ok := envPrefixes[strings.ToLower(strings.TrimSpace(environment))]
	if !ok {
		prefix = "prod"
	}
	return &KeyBuilder{prefix: prefix}
}

// BuildKey prefixes key with the environment namespace
func (kb *KeyBuilder) BuildKey(key string) string {
	return kb.prefix + ":" + key
}

func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

func (kb *KeyBuilder) KeyTeamsVersion() string {
	return kb.BuildKey(KeyTeamsVersion)
}

// KeyTeamsAll is the cached team listing for one listing generation
func (kb *KeyBuilder) KeyTeamsAll(version int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyTeamsAll, version))
}

func (kb *KeyBuilder) KeyTally() string {
	return kb.BuildKey(KeyTally)
}
