package domain

import (
	"strconv"
	"time"
)

// LabValues holds the ten numeric inputs of the patient form.
type LabValues struct {
	HbA1c      float64 `json:"hba1c"`
	BMI        float64 `json:"bmi"`
	TG         float64 `json:"tg"`
	Chol       float64 `json:"chol"`
	Age        float64 `json:"age"`
	HDL        float64 `json:"hdl"`
	LDL        float64 `json:"ldl"`
	Urea       float64 `json:"urea"`
	Creatinine float64 `json:"creatinine"`
	Cr         float64 `json:"cr"`
}

// DefaultLabValues returns the form defaults.
func DefaultLabValues() LabValues {
	var v LabValues
	for _, spec := range NumericFields {
		v.Set(spec.Field, spec.Default)
	}
	return v
}

// Get returns the value of a numeric field.
func (v *LabValues) Get(f Field) float64 {
	switch f {
	case FieldHbA1c:
		return v.HbA1c
	case FieldBMI:
		return v.BMI
	case FieldTG:
		return v.TG
	case FieldChol:
		return v.Chol
	case FieldAge:
		return v.Age
	case FieldHDL:
		return v.HDL
	case FieldLDL:
		return v.LDL
	case FieldUrea:
		return v.Urea
	case FieldCreatinine:
		return v.Creatinine
	case FieldCr:
		return v.Cr
	}
	return 0
}

// Set assigns the value of a numeric field. Unknown fields are ignored.
func (v *LabValues) Set(f Field, value float64) {
	switch f {
	case FieldHbA1c:
		v.HbA1c = value
	case FieldBMI:
		v.BMI = value
	case FieldTG:
		v.TG = value
	case FieldChol:
		v.Chol = value
	case FieldAge:
		v.Age = value
	case FieldHDL:
		v.HDL = value
	case FieldLDL:
		v.LDL = value
	case FieldUrea:
		v.Urea = value
	case FieldCreatinine:
		v.Creatinine = value
	case FieldCr:
		v.Cr = value
	}
}

// PatientRecord is one validated form submission. It is only obtainable
// through NewPatientRecord and is not modified afterwards.
type PatientRecord struct {
	values LabValues
	gender Gender
	class  DiabetesClass
}

// NewPatientRecord builds a record once both categorical selections are made.
// A nil gender or class is an unset selection.
func NewPatientRecord(values LabValues, gender *Gender, class *DiabetesClass) (*PatientRecord, error) {
	if gender == nil {
		return nil, NewValidationError(string(FieldGender), "please select a gender", nil)
	}
	if class == nil {
		return nil, NewValidationError(string(FieldClass), "please select a diabetes class", nil)
	}
	return &PatientRecord{values: values, gender: *gender, class: *class}, nil
}

// Values returns a copy of the numeric inputs.
func (r *PatientRecord) Values() LabValues {
	return r.values
}

// HbA1c is the sole input that drives the stage.
func (r *PatientRecord) HbA1c() float64 {
	return r.values.HbA1c
}

// Gender returns the selected gender.
func (r *PatientRecord) Gender() Gender {
	return r.gender
}

// Class returns the selected diabetes class.
func (r *PatientRecord) Class() DiabetesClass {
	return r.class
}

// FormatValue renders a numeric input with the shortest exact decimal form,
// e.g. 8.2, 25, 1.2.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PredictionResult is the outcome of classifying one record.
type PredictionResult struct {
	ID        string         `json:"id"`
	Stage     Stage          `json:"stage"`
	Report    string         `json:"report"`
	Record    *PatientRecord `json:"-"`
	CreatedAt time.Time      `json:"created_at"`
}

// ClinicContact is the specialist shown in the contact panel.
type ClinicContact struct {
	Name  string `json:"name" mapstructure:"name"`
	Phone string `json:"phone" mapstructure:"phone"`
	Email string `json:"email" mapstructure:"email"`
}
