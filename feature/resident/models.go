package resident

import (
	"time"

	"gorm.io/gorm"
)

// Status is the lifecycle status of a resident.
type Status string

const (
	StatusActive   Status = "AKTIF"
	StatusMoved    Status = "PINDAH"
	StatusDeceased Status = "MENINGGAL"
)

// Marital statuses accepted by the registry.
const (
	MaritalSingle   = "Lajang"
	MaritalMarried  = "Menikah"
	MaritalDivorced = "Cerai Hidup"
	MaritalWidowed  = "Cerai Mati"
)

// Resident is a registered member of the neighborhood, keyed by NIK.
type Resident struct {
	ID            uint      `gorm:"column:id;primaryKey" json:"id"`
	NIK           string    `gorm:"column:nik;size:32;uniqueIndex;not null" json:"nik"`
	NoKK          string    `gorm:"column:no_kk;size:32;index" json:"noKk"`
	Name          string    `gorm:"column:name;size:255" json:"name"`
	BirthPlace    string    `gorm:"column:pob;size:128" json:"pob"`
	BirthDate     string    `gorm:"column:dob;size:32" json:"dob"`
	Gender        string    `gorm:"column:gender;size:32" json:"gender"`
	Religion      string    `gorm:"column:religion;size:32" json:"religion"`
	Occupation    string    `gorm:"column:occupation;size:128" json:"occupation"`
	BloodType     string    `gorm:"column:blood_type;size:8" json:"bloodType"`
	MaritalStatus string    `gorm:"column:marital_status;size:32" json:"maritalStatus"`
	Province      string    `gorm:"column:province;size:128" json:"province"`
	Regency       string    `gorm:"column:regency;size:128" json:"regency"`
	District      string    `gorm:"column:district;size:128" json:"district"`
	Village       string    `gorm:"column:village;size:128" json:"village"`
	Address       string    `gorm:"column:address;type:text" json:"address"`
	Status        Status    `gorm:"column:status;size:16;not null" json:"status"`
	StatusDate    *string   `gorm:"column:status_date;size:32" json:"statusDate"`
	StatusNote    *string   `gorm:"column:status_note;type:text" json:"statusNote"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName overrides the table name.
func (Resident) TableName() string {
	return "residents"
}

// BeforeSave defaults an empty status to AKTIF.
func (r *Resident) BeforeSave(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = StatusActive
	}
	return nil
}

// Columns lists the persisted column names, used by the health check.
func Columns() []string {
	return []string{
		"id", "nik", "no_kk", "name", "pob", "dob", "gender", "religion", "occupation",
		"blood_type", "marital_status", "province", "regency", "district", "village",
		"address", "status", "status_date", "status_note", "created_at", "updated_at",
	}
}

// IsValidStatus reports whether s is one of the lifecycle statuses.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusMoved, StatusDeceased:
		return true
	default:
		return false
	}
}

// assignments returns the mutable columns of r for an update by NIK.
func (r *Resident) assignments(now time.Time) map[string]any {
	return map[string]any{
		"no_kk":          r.NoKK,
		"name":           r.Name,
		"pob":            r.BirthPlace,
		"dob":            r.BirthDate,
		"gender":         r.Gender,
		"religion":       r.Religion,
		"occupation":     r.Occupation,
		"blood_type":     r.BloodType,
		"marital_status": r.MaritalStatus,
		"province":       r.Province,
		"regency":        r.Regency,
		"district":       r.District,
		"village":        r.Village,
		"address":        r.Address,
		"status":         r.Status,
		"status_date":    r.StatusDate,
		"status_note":    r.StatusNote,
		"updated_at":     now,
	}
}
