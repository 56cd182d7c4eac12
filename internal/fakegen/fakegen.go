// Package fakegen produces locale-bound fake values (names, emails, phone
// numbers, addresses, UUIDs) from an injected random source, so the
// determinism of internal/rngkernel flows all the way through to the
// generated value.
package fakegen

import (
	"fmt"
	"math/rand"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// Type is the fixed set of fake-value kinds the pipeline knows how to
// produce, all bound to the EN locale bundled in gofakeit.
type Type string

const (
	FirstName   Type = "first_name"
	LastName    Type = "last_name"
	Name        Type = "name"
	CompanyName Type = "company_name"
	Email       Type = "email"
	PhoneNumber Type = "phone_number"
	Address     Type = "address"
	Md5         Type = "md5"
)

// Generate produces one fake value of the given type using rng. Address
// composes "{street} {zip}, {city}, {postcode}"; Md5 returns a version-4
// UUID rendered as its canonical 36-char hyphenated string.
func Generate(t Type, rng *rand.Rand) string {
	faker := gofakeit.NewFaker(rng, true)

	switch t {
	case FirstName:
		return faker.FirstName()
	case LastName:
		return faker.LastName()
	case Name:
		return faker.Name()
	case CompanyName:
		return faker.Company()
	case Email:
		return faker.Email()
	case PhoneNumber:
		return faker.Phone()
	case Address:
		street := faker.Street()
		zip := faker.Zip()
		city := faker.City()
		postCode := faker.Zip()
		return fmt.Sprintf("%s %s, %s, %s", street, zip, city, postCode)
	case Md5:
		id, err := uuid.NewRandomFromReader(&randReader{rng})
		if err != nil {
			// uuid.NewRandomFromReader only fails if the reader itself
			// errors; a math/rand.Rand-backed reader never does.
			panic(fmt.Sprintf("fakegen: unexpected uuid generation failure: %v", err))
		}
		return id.String()
	default:
		panic(fmt.Sprintf("fakegen: unknown faker type %q", t))
	}
}

// SafeEmail produces a fake email address, the generator used by the
// multi-email and id-prefix transformers which operate below the main
// Faker transformer dispatch.
func SafeEmail(rng *rand.Rand) string {
	return gofakeit.NewFaker(rng, true).Email()
}

// randReader adapts a *rand.Rand to io.Reader for uuid.NewRandomFromReader.
type randReader struct {
	rng *rand.Rand
}

func (r *randReader) Read(p []byte) (int, error) {
	return r.rng.Read(p)
}
