package textcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	cases := []struct {
		like, word, want string
	}{
		{"escuala", "escuela", "escuela"},
		{"Escuala", "escuela", "Escuela"},
		{"ESCUALA", "escuela", "ESCUELA"},
		{"A", "al", "Al"},
		{"Escuela", "centro educativo", "Centro educativo"},
		{"eSCUELA", "institución", "institución"},
		{"Él", "ónix", "Ónix"},
		{"123", "x", "x"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Match(c.like, c.word), "%q -> %q", c.like, c.word)
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsTitle("Casa"))
	assert.True(t, IsTitle("Á"))
	assert.False(t, IsTitle("casa"))
	assert.False(t, IsTitle("CAsa"))
	assert.False(t, IsTitle(""))

	assert.True(t, IsUpper("CASA"))
	assert.False(t, IsUpper("123"))
	assert.False(t, IsUpper("Casa"))

	assert.True(t, StartsUpper("El"))
	assert.True(t, StartsUpper("EL"))
	assert.False(t, StartsUpper("el"))
	assert.False(t, StartsUpper(""))

	assert.Equal(t, "", Capitalize(""))
}
