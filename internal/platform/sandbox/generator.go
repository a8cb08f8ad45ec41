// Package sandbox generates synthetic patient records for demo and test
// environments and seeds an empty registry with them.
package sandbox

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/ehr/registry/internal/domain/patient"
)

// Age bounds for generated patients, in whole years.
const (
	MinAge = 18
	MaxAge = 80
)

// LastVisitProbability is the share of generated patients that have a last
// visit. The rest are new patients with no visit yet.
const LastVisitProbability = 0.7

const (
	registrationWindowYears = 2
	lastVisitWindowMonths   = 6
)

// Generator produces field values from a caller-owned random source. It is
// not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeededGenerator is a convenience for NewGenerator(rand.New(rand.NewSource(seed))).
func NewSeededGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

// choose picks one element of set uniformly.
func choose[T any](rng *rand.Rand, set []T) T {
	return set[rng.Intn(len(set))]
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) FirstName() string { return choose(g.rng, firstNames) }
func (g *Generator) LastName() string  { return choose(g.rng, lastNames) }

// DateOfBirth returns a day in [today-maxAge years, today-minAge years), so
// the age at now is always within [minAge, maxAge].
func (g *Generator) DateOfBirth(now time.Time, minAge, maxAge int) patient.Date {
	if minAge < 0 || minAge >= maxAge {
		panic(fmt.Sprintf("sandbox: invalid age range [%d, %d]", minAge, maxAge))
	}
	today := patient.DateOf(now)
	earliest := today.AddDate(-maxAge, 0, 0)
	latest := today.AddDate(-minAge, 0, 0)
	days := int(latest.Sub(earliest).Hours() / 24)
	return patient.DateOf(earliest.AddDate(0, 0, g.rng.Intn(days)))
}

func (g *Generator) PhoneNumber() string {
	return fmt.Sprintf("(%03d) %03d-%04d", g.between(100, 999), g.between(100, 999), g.between(1000, 9999))
}

func (g *Generator) Email(firstName, lastName string) string {
	return fmt.Sprintf("%s.%s%d@%s",
		strings.ToLower(firstName), strings.ToLower(lastName), g.between(1, 999), choose(g.rng, emailDomains))
}

func (g *Generator) Address() string {
	return fmt.Sprintf("%d %s %s", g.between(1, 9999), choose(g.rng, streetNames), choose(g.rng, streetTypes))
}

func (g *Generator) ZipCode() string {
	return fmt.Sprintf("%05d", g.between(0, 99999))
}

// PatientIdentifier is deterministic: index 7 is always P00000007.
func PatientIdentifier(index int) string {
	return fmt.Sprintf("P%08d", index)
}

// InsuranceNumber is random and may repeat across patients.
func (g *Generator) InsuranceNumber() string {
	return fmt.Sprintf("INS%09d", g.between(0, 999999999))
}

// Identification flips between the two document kinds and formats the
// number to match the chosen one.
func (g *Generator) Identification() (patient.IdentificationType, string) {
	kind := choose(g.rng, patient.IdentificationTypes)
	switch kind {
	case patient.IdentificationSSN:
		return kind, fmt.Sprintf("%03d-%02d-%04d", g.between(100, 999), g.between(1, 99), g.between(1, 9999))
	default:
		return kind, fmt.Sprintf("D%08d", g.between(0, 99999999))
	}
}

// RegistrationDate returns an instant in [now-2y, now).
func (g *Generator) RegistrationDate(now time.Time) time.Time {
	return g.instant(now.AddDate(-registrationWindowYears, 0, 0), now)
}

// LastVisitDate returns an instant in [now-6mo, now), or nil for a patient
// who has not visited yet.
func (g *Generator) LastVisitDate(now time.Time) *time.Time {
	if g.rng.Float64() >= LastVisitProbability {
		return nil
	}
	t := g.instant(now.AddDate(0, -lastVisitWindowMonths, 0), now)
	return &t
}

func (g *Generator) instant(from, to time.Time) time.Time {
	span := to.Sub(from)
	return from.Add(time.Duration(g.rng.Int63n(int64(span))))
}
