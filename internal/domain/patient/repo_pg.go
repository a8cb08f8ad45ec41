package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ehr/registry/internal/platform/db"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DBTX is the subset of *pgxpool.Pool the repository needs.
type DBTX interface {
	querier
	db.Beginner
}

type repoPG struct {
	pool DBTX
	now  func() time.Time
}

func NewRepo(pool DBTX) Repository {
	return &repoPG{pool: pool, now: time.Now}
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientCols = `id, patient_id, first_name, last_name, date_of_birth, gender,
	phone_number, email, address, city, state, zip_code, country, blood_group,
	emergency_contact_name, emergency_contact_phone, emergency_contact_relation,
	insurance_number, insurance_provider, marital_status, occupation, nationality,
	identification_type, identification_number, registration_date, last_visit_date,
	status, created_at, updated_at`

// insertCols excludes the columns the store fills in: id, created_at, updated_at.
var insertCols = []string{
	"patient_id", "first_name", "last_name", "date_of_birth", "gender",
	"phone_number", "email", "address", "city", "state", "zip_code", "country", "blood_group",
	"emergency_contact_name", "emergency_contact_phone", "emergency_contact_relation",
	"insurance_number", "insurance_provider", "marital_status", "occupation", "nationality",
	"identification_type", "identification_number", "registration_date", "last_visit_date",
	"status",
}

func insertValues(p *Patient) []any {
	return []any{
		p.PatientID, p.FirstName, p.LastName, p.DateOfBirth.Time, string(p.Gender),
		p.PhoneNumber, p.Email, p.Address, p.City, p.State, p.ZipCode, p.Country, string(p.BloodGroup),
		p.EmergencyContactName, p.EmergencyContactPhone, p.EmergencyContactRelation,
		p.InsuranceNumber, p.InsuranceProvider, string(p.MaritalStatus), p.Occupation, p.Nationality,
		string(p.IdentificationType), p.IdentificationNumber, p.RegistrationDate, p.LastVisitDate,
		string(p.Status),
	}
}

func placeholders(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "$%d", i)
	}
	return b.String()
}

var insertSQL = `INSERT INTO patient (` + strings.Join(insertCols, ", ") + `)
	VALUES (` + placeholders(len(insertCols)) + `)
	RETURNING id, created_at, updated_at`

func (r *repoPG) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count patients: %w", err)
	}
	return n, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	err := r.conn(ctx).QueryRow(ctx, insertSQL, insertValues(p)...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert patient: %w", mapWriteErr(err))
	}
	return nil
}

// CreateBatch streams the records with COPY inside one transaction, then reads
// back the keys and timestamps the store assigned.
func (r *repoPG) CreateBatch(ctx context.Context, patients []*Patient) ([]*Patient, error) {
	if len(patients) == 0 {
		return nil, nil
	}

	rows := make([][]any, 0, len(patients))
	ids := make([]string, 0, len(patients))
	byID := make(map[string]*Patient, len(patients))
	for _, p := range patients {
		rows = append(rows, insertValues(p))
		ids = append(ids, p.PatientID)
		byID[p.PatientID] = p
	}

	err := db.RunInTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		n, err := tx.CopyFrom(ctx, pgx.Identifier{"patient"}, insertCols, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("copy patients: %w", mapWriteErr(err))
		}
		if int(n) != len(patients) {
			return fmt.Errorf("copy patients: stored %d of %d rows", n, len(patients))
		}

		keys, err := tx.Query(ctx,
			`SELECT patient_id, id, created_at, updated_at FROM patient WHERE patient_id = ANY($1)`, ids)
		if err != nil {
			return fmt.Errorf("read assigned keys: %w", err)
		}
		defer keys.Close()
		for keys.Next() {
			var (
				pid              string
				id               int64
				created, updated time.Time
			)
			if err := keys.Scan(&pid, &id, &created, &updated); err != nil {
				return fmt.Errorf("scan assigned key: %w", err)
			}
			if p, ok := byID[pid]; ok {
				p.ID, p.CreatedAt, p.UpdatedAt = id, created, updated
			}
		}
		return keys.Err()
	})
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *repoPG) ExistsByPatientID(ctx context.Context, patientID string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM patient WHERE patient_id = $1)`, patientID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check patient id: %w", err)
	}
	return exists, nil
}

func (r *repoPG) GetByPatientID(ctx context.Context, patientID string) (*Patient, error) {
	return r.getOne(ctx, "patient_id", patientID)
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	return r.getOne(ctx, "email", email)
}

func (r *repoPG) GetByPhoneNumber(ctx context.Context, phone string) (*Patient, error) {
	return r.getOne(ctx, "phone_number", phone)
}

func (r *repoPG) GetByIdentificationNumber(ctx context.Context, number string) (*Patient, error) {
	return r.getOne(ctx, "identification_number", number)
}

// getOne looks a patient up by a single column. column is always a constant
// chosen by this file.
func (r *repoPG) getOne(ctx context.Context, column, value string) (*Patient, error) {
	row := r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE `+column+` = $1 ORDER BY id LIMIT 1`, value)
	p, err := scanPatient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get patient by %s: %w", column, err)
	}
	return p, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *repoPG) SearchByName(ctx context.Context, name string) ([]*Patient, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(name)) + "%"
	return r.query(ctx, `SELECT `+patientCols+` FROM patient
		WHERE LOWER(first_name || ' ' || last_name) LIKE $1 ESCAPE '\'
		ORDER BY id`, pattern)
}

func (r *repoPG) List(ctx context.Context, f Filter) ([]*Patient, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if f.Gender != "" {
		add("gender = $%d", string(f.Gender))
	}
	if f.BloodGroup != "" {
		add("blood_group = $%d", string(f.BloodGroup))
	}
	if f.City != "" {
		add("LOWER(city) = LOWER($%d)", f.City)
	}
	today := DateOf(r.now())
	if f.MinAge != nil {
		add("date_of_birth <= $%d", today.AddDate(-*f.MinAge, 0, 0))
	}
	if f.MaxAge != nil {
		add("date_of_birth > $%d", today.AddDate(-(*f.MaxAge + 1), 0, 0))
	}

	sql := `SELECT ` + patientCols + ` FROM patient`
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, " AND ")
	}
	sql += ` ORDER BY id`
	return r.query(ctx, sql, args...)
}

func (r *repoPG) query(ctx context.Context, sql string, args ...any) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query patients: %w", err)
	}
	defer rows.Close()

	patients := []*Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patients: %w", err)
	}
	return patients, nil
}

// scanPatient reads one row in patientCols order. pgx.Rows satisfies pgx.Row.
func scanPatient(row pgx.Row) (*Patient, error) {
	var (
		p   Patient
		dob time.Time
	)
	err := row.Scan(
		&p.ID, &p.PatientID, &p.FirstName, &p.LastName, &dob, &p.Gender,
		&p.PhoneNumber, &p.Email, &p.Address, &p.City, &p.State, &p.ZipCode, &p.Country, &p.BloodGroup,
		&p.EmergencyContactName, &p.EmergencyContactPhone, &p.EmergencyContactRelation,
		&p.InsuranceNumber, &p.InsuranceProvider, &p.MaritalStatus, &p.Occupation, &p.Nationality,
		&p.IdentificationType, &p.IdentificationNumber, &p.RegistrationDate, &p.LastVisitDate,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.DateOfBirth = DateOf(dob)
	return &p, nil
}

func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicatePatientID, pgErr.Detail)
	}
	return err
}
