package sync

import "smartwarga/core/utils"

// Field identifies a canonical sheet column.
type Field int

const (
	FieldUnknown Field = iota
	FieldNIK
	FieldNoKK
	FieldName
	FieldBirthPlace
	FieldBirthDate
	FieldGender
	FieldReligion
	FieldOccupation
	FieldBloodType
	FieldMaritalStatus
	FieldProvince
	FieldRegency
	FieldDistrict
	FieldVillage
	FieldAddress
	FieldStatus
	FieldStatusDate
	FieldStatusNote
	FieldUpdatedAt
)

// Headers is the column contract of the sheet, in order. Push writes it as
// the first row and export uses it as the CSV header.
var Headers = []string{
	"NIK",
	"No KK",
	"Nama Lengkap",
	"Tempat Lahir",
	"Tanggal Lahir",
	"Jenis Kelamin",
	"Agama",
	"Pekerjaan",
	"Golongan Darah",
	"Status Perkawinan",
	"Provinsi",
	"Kabupaten",
	"Kecamatan",
	"Kelurahan",
	"Alamat",
	"Status Warga",
	"Tanggal Status",
	"Keterangan Status",
	"Updated At",
}

// columnOrder maps Headers positions to fields.
var columnOrder = []Field{
	FieldNIK, FieldNoKK, FieldName, FieldBirthPlace, FieldBirthDate, FieldGender,
	FieldReligion, FieldOccupation, FieldBloodType, FieldMaritalStatus, FieldProvince,
	FieldRegency, FieldDistrict, FieldVillage, FieldAddress, FieldStatus,
	FieldStatusDate, FieldStatusNote, FieldUpdatedAt,
}

// headerSynonyms maps normalized header spellings to fields.
// Keys are in utils.NormalizeKey form.
var headerSynonyms = map[string]Field{
	"nik":    FieldNIK,
	"no nik": FieldNIK,

	"no kk": FieldNoKK,
	"nokk":  FieldNoKK,
	"kk":    FieldNoKK,

	"nama":         FieldName,
	"nama lengkap": FieldName,
	"name":         FieldName,

	"tempat lahir": FieldBirthPlace,
	"pob":          FieldBirthPlace,

	"tanggal lahir": FieldBirthDate,
	"tgl lahir":     FieldBirthDate,
	"dob":           FieldBirthDate,
	"ttl":           FieldBirthDate,

	"jenis kelamin": FieldGender,
	"jk":            FieldGender,
	"gender":        FieldGender,

	"agama":    FieldReligion,
	"religion": FieldReligion,

	"pekerjaan":  FieldOccupation,
	"occupation": FieldOccupation,
	"job":        FieldOccupation,

	"golongan darah": FieldBloodType,
	"goldar":         FieldBloodType,
	"gol darah":      FieldBloodType,
	"blood type":     FieldBloodType,
	"bloodtype":      FieldBloodType,

	"status perkawinan": FieldMaritalStatus,
	"status kawin":      FieldMaritalStatus,
	"marital status":    FieldMaritalStatus,

	"provinsi": FieldProvince,
	"province": FieldProvince,

	"kabupaten":      FieldRegency,
	"kabupaten/kota": FieldRegency,
	"kota":           FieldRegency,
	"regency":        FieldRegency,

	"kecamatan": FieldDistrict,
	"district":  FieldDistrict,

	"kelurahan": FieldVillage,
	"desa":      FieldVillage,
	"village":   FieldVillage,

	"alamat":         FieldAddress,
	"alamat lengkap": FieldAddress,
	"address":        FieldAddress,

	"status warga": FieldStatus,
	"status":       FieldStatus,

	"tanggal status": FieldStatusDate,
	"status date":    FieldStatusDate,

	"keterangan status": FieldStatusNote,
	"status note":       FieldStatusNote,

	"updated at": FieldUpdatedAt,
	"updatedat":  FieldUpdatedAt,
}

// LookupField resolves a sheet header to its canonical field.
func LookupField(header string) Field {
	if f, ok := headerSynonyms[utils.NormalizeKey(header)]; ok {
		return f
	}
	return FieldUnknown
}
