package template

import (
	"lexdraft/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsFor_NDA(t *testing.T) {
	fields := FieldsFor(domain.CategoryNDA)

	want := []domain.FieldDefinition{
		{ID: "partyA", Label: "Party A (Company Name)", Kind: domain.FieldText, Placeholder: "Enter company name", Required: true},
		{ID: "partyB", Label: "Party B (Recipient Name)", Kind: domain.FieldText, Placeholder: "Enter recipient name", Required: true},
		{ID: "purpose", Label: "Purpose of Disclosure", Kind: domain.FieldTextarea, Placeholder: "Describe the purpose of sharing confidential information", Required: true},
		{ID: "duration", Label: "Duration (in years)", Kind: domain.FieldText, Placeholder: "Enter duration", Required: true},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("nda fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsFor_UnknownCategory(t *testing.T) {
	fields := FieldsFor(domain.Category("maritime-salvage"))
	assert.NotNil(t, fields)
	assert.Empty(t, fields)

	_, missing := MissingRequired(fields, nil)
	assert.False(t, missing)
}

func TestFieldsFor_ReturnsCopy(t *testing.T) {
	fields := FieldsFor(domain.CategoryNDA)
	fields[0].Required = false

	assert.True(t, FieldsFor(domain.CategoryNDA)[0].Required)
}

func TestFieldsFor_OnlyNDAHasFields(t *testing.T) {
	for _, c := range []domain.Category{domain.CategoryRental, domain.CategoryWill, domain.CategoryBusiness} {
		fields := FieldsFor(c)
		assert.Empty(t, fields, c)

		_, missing := MissingRequired(fields, domain.FormValues{})
		assert.False(t, missing, c)
	}
}

func TestMissingRequired(t *testing.T) {
	fields := FieldsFor(domain.CategoryNDA)

	id, missing := MissingRequired(fields, domain.FormValues{
		"partyA": "Acme", "purpose": "eval", "duration": "2",
	})
	assert.True(t, missing)
	assert.Equal(t, "partyB", id)

	id, missing = MissingRequired(fields, domain.FormValues{
		"partyA": "Acme", "partyB": "   ", "purpose": "eval", "duration": "2",
	})
	assert.True(t, missing)
	assert.Equal(t, "partyB", id)

	_, missing = MissingRequired(fields, domain.FormValues{
		"partyA": "Acme", "partyB": "Bob", "purpose": "eval", "duration": "2",
	})
	assert.False(t, missing)
}

func TestMissingRequired_SkipsOptional(t *testing.T) {
	catalogue, err := loadCatalogue([]byte("will:\n  - id: testator\n    type: text\n    required: true\n  - id: guardian\n    type: text\n"))
	require.NoError(t, err)

	_, missing := MissingRequired(catalogue[domain.CategoryWill], domain.FormValues{"testator": "Ann"})
	assert.False(t, missing)
}

func TestKnownValues(t *testing.T) {
	fields := FieldsFor(domain.CategoryNDA)
	got := KnownValues(fields, domain.FormValues{"partyA": "Acme", "evil": "x"})
	assert.Equal(t, domain.FormValues{"partyA": "Acme"}, got)
}

func TestLoadCatalogue_Rejects(t *testing.T) {
	_, err := loadCatalogue([]byte("nda:\n  - id: a\n    type: text\n  - id: a\n    type: text\n"))
	assert.Error(t, err)

	_, err = loadCatalogue([]byte("nda:\n  - id: a\n    type: checkbox\n"))
	assert.Error(t, err)

	out, err := loadCatalogue([]byte("nda:\n  - id: a\n    type: date\n    required: true\n"))
	require.NoError(t, err)
	assert.True(t, out[domain.CategoryNDA][0].Required)
}
