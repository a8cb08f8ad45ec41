package patient

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Genders lists every Gender variant in declaration order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) Valid() bool { return contains(Genders, g) }

type MaritalStatus string

const (
	MaritalSingle    MaritalStatus = "SINGLE"
	MaritalMarried   MaritalStatus = "MARRIED"
	MaritalDivorced  MaritalStatus = "DIVORCED"
	MaritalWidowed   MaritalStatus = "WIDOWED"
	MaritalSeparated MaritalStatus = "SEPARATED"
)

var MaritalStatuses = []MaritalStatus{
	MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed, MaritalSeparated,
}

func (m MaritalStatus) Valid() bool { return contains(MaritalStatuses, m) }

type Status string

const (
	StatusActive      Status = "ACTIVE"
	StatusInactive    Status = "INACTIVE"
	StatusDeceased    Status = "DECEASED"
	StatusTransferred Status = "TRANSFERRED"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusDeceased, StatusTransferred}

func (s Status) Valid() bool { return contains(Statuses, s) }

type BloodGroup string

var BloodGroups = []BloodGroup{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func (b BloodGroup) Valid() bool { return contains(BloodGroups, b) }

// IdentificationType is the kind of government document backing
// IdentificationNumber.
type IdentificationType string

const (
	IdentificationSSN            IdentificationType = "SSN"
	IdentificationDriversLicense IdentificationType = "Driver's License"
)

var IdentificationTypes = []IdentificationType{IdentificationSSN, IdentificationDriversLicense}

func (t IdentificationType) Valid() bool { return contains(IdentificationTypes, t) }

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Date is a calendar date without a time of day. It is stored as a
// PostgreSQL DATE and rendered as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// AgeAt returns the number of whole years between d and the calendar date of now.
func (d Date) AgeAt(now time.Time) int {
	ny, nm, nd := now.Date()
	age := ny - d.Year()
	if nm < d.Month() || (nm == d.Month() && nd < d.Day()) {
		age--
	}
	return age
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Patient maps to the patient table.
type Patient struct {
	ID                       int64              `db:"id" json:"id"`
	PatientID                string             `db:"patient_id" json:"patientId" validate:"required,max=20"`
	FirstName                string             `db:"first_name" json:"firstName" validate:"required,max=50"`
	LastName                 string             `db:"last_name" json:"lastName" validate:"required,max=50"`
	DateOfBirth              Date               `db:"date_of_birth" json:"dateOfBirth"`
	Gender                   Gender             `db:"gender" json:"gender" validate:"required,enum"`
	PhoneNumber              string             `db:"phone_number" json:"phoneNumber" validate:"max=15"`
	Email                    string             `db:"email" json:"email" validate:"max=100"`
	Address                  string             `db:"address" json:"address" validate:"max=500"`
	City                     string             `db:"city" json:"city" validate:"max=50"`
	State                    string             `db:"state" json:"state" validate:"max=50"`
	ZipCode                  string             `db:"zip_code" json:"zipCode" validate:"max=10"`
	Country                  string             `db:"country" json:"country" validate:"max=50"`
	BloodGroup               BloodGroup         `db:"blood_group" json:"bloodGroup" validate:"omitempty,enum"`
	EmergencyContactName     string             `db:"emergency_contact_name" json:"emergencyContactName" validate:"max=100"`
	EmergencyContactPhone    string             `db:"emergency_contact_phone" json:"emergencyContactPhone" validate:"max=15"`
	EmergencyContactRelation string             `db:"emergency_contact_relation" json:"emergencyContactRelation" validate:"max=50"`
	InsuranceNumber          string             `db:"insurance_number" json:"insuranceNumber" validate:"max=50"`
	InsuranceProvider        string             `db:"insurance_provider" json:"insuranceProvider" validate:"max=100"`
	MaritalStatus            MaritalStatus      `db:"marital_status" json:"maritalStatus" validate:"omitempty,enum"`
	Occupation               string             `db:"occupation" json:"occupation" validate:"max=100"`
	Nationality              string             `db:"nationality" json:"nationality" validate:"max=50"`
	IdentificationType       IdentificationType `db:"identification_type" json:"identificationType" validate:"omitempty,enum"`
	IdentificationNumber     string             `db:"identification_number" json:"identificationNumber" validate:"max=50"`
	RegistrationDate         time.Time          `db:"registration_date" json:"registrationDate"`
	LastVisitDate            *time.Time         `db:"last_visit_date" json:"lastVisitDate"`
	Status                   Status             `db:"status" json:"status" validate:"omitempty,enum"`
	CreatedAt                time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt                time.Time          `db:"updated_at" json:"updatedAt"`
}

// FullName is the "First Last" form that name search matches against.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Gender     Gender
	BloodGroup BloodGroup
	City       string
	MinAge     *int
	MaxAge     *int
}
