package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvStringList(t *testing.T) {
	def := []string{"*"}

	t.Setenv("CFG_TEST_LIST", "https://a.example.com, https://b.example.com,,")
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, GetEnvStringList("CFG_TEST_LIST", def))

	t.Setenv("CFG_TEST_LIST", " , ")
	assert.Equal(t, def, GetEnvStringList("CFG_TEST_LIST", def))

	t.Setenv("CFG_TEST_LIST", "")
	assert.Equal(t, def, GetEnvStringList("CFG_TEST_LIST", def))
}
