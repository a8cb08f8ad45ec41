package sandbox

import (
	"time"

	"github.com/ehr/registry/internal/domain/patient"
)

// Patient assembles one complete record for the 1-based index. The emergency
// contact gets its own name draw, independent of the patient's.
func (g *Generator) Patient(index int, now time.Time) *patient.Patient {
	first, last := g.FirstName(), g.LastName()
	idType, idNumber := g.Identification()

	return &patient.Patient{
		PatientID:                PatientIdentifier(index),
		FirstName:                first,
		LastName:                 last,
		DateOfBirth:              g.DateOfBirth(now, MinAge, MaxAge),
		Gender:                   choose(g.rng, patient.Genders),
		PhoneNumber:              g.PhoneNumber(),
		Email:                    g.Email(first, last),
		Address:                  g.Address(),
		City:                     choose(g.rng, cities),
		State:                    choose(g.rng, states),
		ZipCode:                  g.ZipCode(),
		Country:                  choose(g.rng, countries),
		BloodGroup:               choose(g.rng, patient.BloodGroups),
		EmergencyContactName:     g.FirstName() + " " + g.LastName(),
		EmergencyContactPhone:    g.PhoneNumber(),
		EmergencyContactRelation: choose(g.rng, relations),
		InsuranceNumber:          g.InsuranceNumber(),
		InsuranceProvider:        choose(g.rng, insuranceProviders),
		MaritalStatus:            choose(g.rng, patient.MaritalStatuses),
		Occupation:               choose(g.rng, occupations),
		Nationality:              nationality,
		IdentificationType:       idType,
		IdentificationNumber:     idNumber,
		RegistrationDate:         g.RegistrationDate(now),
		LastVisitDate:            g.LastVisitDate(now),
		Status:                   patient.StatusActive,
	}
}

// Patients assembles records for indices 1..count.
func (g *Generator) Patients(count int, now time.Time) []*patient.Patient {
	out := make([]*patient.Patient, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, g.Patient(i, now))
	}
	return out
}
