package resident

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Request is the body of resident create and update requests.
type Request struct {
	NIK           string  `json:"nik" validate:"required,len=16,numeric"`
	NoKK          string  `json:"noKk" validate:"omitempty,len=16,numeric"`
	Name          string  `json:"name" validate:"required,max=255"`
	BirthPlace    string  `json:"pob" validate:"max=128"`
	BirthDate     string  `json:"dob" validate:"max=32"`
	Gender        string  `json:"gender" validate:"omitempty,oneof='Laki-laki' 'Perempuan'"`
	Religion      string  `json:"religion" validate:"max=32"`
	Occupation    string  `json:"occupation" validate:"max=128"`
	BloodType     string  `json:"bloodType" validate:"max=8"`
	MaritalStatus string  `json:"maritalStatus" validate:"omitempty,oneof='Lajang' 'Menikah' 'Cerai Hidup' 'Cerai Mati'"`
	Province      string  `json:"province" validate:"max=128"`
	Regency       string  `json:"regency" validate:"max=128"`
	District      string  `json:"district" validate:"max=128"`
	Village       string  `json:"village" validate:"max=128"`
	Address       string  `json:"address"`
	Status        string  `json:"status" validate:"omitempty,oneof=AKTIF PINDAH MENINGGAL"`
	StatusDate    *string `json:"statusDate" validate:"omitempty,max=32"`
	StatusNote    *string `json:"statusNote"`
}

// Validate checks the request against its struct tags.
func (r *Request) Validate() error {
	r.NIK = strings.TrimSpace(r.NIK)
	r.NoKK = strings.TrimSpace(r.NoKK)
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	return validate.Struct(r)
}

// Model converts the request into a Resident.
func (r *Request) Model() *Resident {
	return &Resident{
		NIK:           r.NIK,
		NoKK:          r.NoKK,
		Name:          strings.TrimSpace(r.Name),
		BirthPlace:    r.BirthPlace,
		BirthDate:     r.BirthDate,
		Gender:        r.Gender,
		Religion:      r.Religion,
		Occupation:    r.Occupation,
		BloodType:     r.BloodType,
		MaritalStatus: r.MaritalStatus,
		Province:      r.Province,
		Regency:       r.Regency,
		District:      r.District,
		Village:       r.Village,
		Address:       r.Address,
		Status:        Status(r.Status),
		StatusDate:    r.StatusDate,
		StatusNote:    r.StatusNote,
	}
}
