package fakegen

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateIsDeterministicForSeededSource(t *testing.T) {
	a := Generate(Email, rand.New(rand.NewSource(42)))
	b := Generate(Email, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestGenerateMd5ProducesCanonicalUUID(t *testing.T) {
	v := Generate(Md5, rand.New(rand.NewSource(1)))
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`), v)
}

func TestGenerateAddressComposesParts(t *testing.T) {
	v := Generate(Address, rand.New(rand.NewSource(7)))
	assert.Regexp(t, regexp.MustCompile(`^.+, .+, .+$`), v)
}

func TestGeneratePanicsOnUnknownType(t *testing.T) {
	assert.Panics(t, func() {
		Generate(Type("not_a_real_type"), rand.New(rand.NewSource(1)))
	})
}

func TestSafeEmailLooksLikeAnEmail(t *testing.T) {
	v := SafeEmail(rand.New(rand.NewSource(1)))
	assert.Contains(t, v, "@")
}
