package sync

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"smartwarga/feature/resident"
)

// Decoding errors.
var (
	ErrInvalidNIK    = errors.New("NIK tidak valid atau kurang dari 16 karakter")
	ErrInvalidStatus = errors.New("status warga tidak dikenal")
)

const (
	minNIKLength = 16
	// timestampLayout is ISO 8601 in UTC with millisecond precision.
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Row is one spreadsheet row. Recognized columns land in the named fields;
// any other column is kept in Extra under its original header.
type Row struct {
	NIK           string
	NoKK          string
	Name          string
	BirthPlace    string
	BirthDate     string
	Gender        string
	Religion      string
	Occupation    string
	BloodType     string
	MaritalStatus string
	Province      string
	Regency       string
	District      string
	Village       string
	Address       string
	Status        string
	StatusDate    string
	StatusNote    string
	UpdatedAt     string
	Extra         map[string]string
}

func (r *Row) ref(f Field) *string {
	switch f {
	case FieldNIK:
		return &r.NIK
	case FieldNoKK:
		return &r.NoKK
	case FieldName:
		return &r.Name
	case FieldBirthPlace:
		return &r.BirthPlace
	case FieldBirthDate:
		return &r.BirthDate
	case FieldGender:
		return &r.Gender
	case FieldReligion:
		return &r.Religion
	case FieldOccupation:
		return &r.Occupation
	case FieldBloodType:
		return &r.BloodType
	case FieldMaritalStatus:
		return &r.MaritalStatus
	case FieldProvince:
		return &r.Province
	case FieldRegency:
		return &r.Regency
	case FieldDistrict:
		return &r.District
	case FieldVillage:
		return &r.Village
	case FieldAddress:
		return &r.Address
	case FieldStatus:
		return &r.Status
	case FieldStatusDate:
		return &r.StatusDate
	case FieldStatusNote:
		return &r.StatusNote
	case FieldUpdatedAt:
		return &r.UpdatedAt
	default:
		return nil
	}
}

// Set assigns a value to a recognized field. Unknown fields are ignored.
func (r *Row) Set(f Field, v string) {
	if p := r.ref(f); p != nil {
		*p = v
	}
}

// Get returns the value of a recognized field.
func (r *Row) Get(f Field) string {
	if p := r.ref(f); p != nil {
		return *p
	}
	return ""
}

// Values returns the row in the fixed column order of Headers.
func (r *Row) Values() []string {
	out := make([]string, len(columnOrder))
	for i, f := range columnOrder {
		out[i] = r.Get(f)
	}
	return out
}

// Timestamp parses the UpdatedAt column. Values without an offset are read
// in loc (UTC when nil). present is false when the column is empty; err is
// set when it holds something that is not a timestamp.
func (r *Row) Timestamp(loc *time.Location) (t time.Time, present bool, err error) {
	raw := strings.TrimSpace(r.UpdatedAt)
	if raw == "" {
		return time.Time{}, false, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, true, fmt.Errorf("invalid timestamp %q", raw)
}

// EncodeResident converts a resident into a sheet row.
func EncodeResident(res resident.Resident) Row {
	return Row{
		NIK:           res.NIK,
		NoKK:          res.NoKK,
		Name:          res.Name,
		BirthPlace:    res.BirthPlace,
		BirthDate:     res.BirthDate,
		Gender:        res.Gender,
		Religion:      res.Religion,
		Occupation:    res.Occupation,
		BloodType:     res.BloodType,
		MaritalStatus: res.MaritalStatus,
		Province:      res.Province,
		Regency:       res.Regency,
		District:      res.District,
		Village:       res.Village,
		Address:       res.Address,
		Status:        string(res.Status),
		StatusDate:    deref(res.StatusDate),
		StatusNote:    deref(res.StatusNote),
		UpdatedAt:     formatTimestamp(res.UpdatedAt),
	}
}

// DecodeRow converts a sheet row into a resident. Rows without a NIK of at
// least 16 characters, or with an unknown status, are rejected.
func DecodeRow(row Row) (resident.Resident, error) {
	nik := strings.TrimSpace(row.NIK)
	if len(nik) < minNIKLength {
		return resident.Resident{}, ErrInvalidNIK
	}

	status := resident.Status(strings.ToUpper(strings.TrimSpace(row.Status)))
	if status == "" {
		status = resident.StatusActive
	}
	if !resident.IsValidStatus(status) {
		return resident.Resident{}, fmt.Errorf("%w: %s", ErrInvalidStatus, row.Status)
	}

	return resident.Resident{
		NIK:           nik,
		NoKK:          row.NoKK,
		Name:          row.Name,
		BirthPlace:    row.BirthPlace,
		BirthDate:     row.BirthDate,
		Gender:        row.Gender,
		Religion:      row.Religion,
		Occupation:    row.Occupation,
		BloodType:     row.BloodType,
		MaritalStatus: row.MaritalStatus,
		Province:      row.Province,
		Regency:       row.Regency,
		District:      row.District,
		Village:       row.Village,
		Address:       row.Address,
		Status:        status,
		StatusDate:    optional(row.StatusDate),
		StatusNote:    optional(row.StatusNote),
	}, nil
}

// sameContent reports whether two residents hold the same sheet-visible data.
func sameContent(a, b resident.Resident) bool {
	ra, rb := EncodeResident(a), EncodeResident(b)
	ra.UpdatedAt, rb.UpdatedAt = "", ""
	va, vb := ra.Values(), rb.Values()
	for i := range va {
		if va[i] != vb[i] {
			return false
		}
	}
	return true
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
