package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AllFieldsValid(t *testing.T) {
	res := Validate(Card{Number: "1234123412341234", Expiry: "12/2030", CVC: "123"})

	assert.True(t, res.OK())
	assert.Empty(t, res.Fields)
	assert.Empty(t, res.Aggregate())
}

func TestValidate_EachRuleIndependently(t *testing.T) {
	tests := []struct {
		name   string
		card   Card
		fields []string
		reason string
	}{
		{"short card number", Card{Number: "12341234", Expiry: "12/2030", CVC: "123"}, []string{"card_number"}, ReasonCardNumber},
		{"month 00", Card{Number: "1234123412341234", Expiry: "00/2030", CVC: "123"}, []string{"expiry"}, ReasonExpiry},
		{"month 13", Card{Number: "1234123412341234", Expiry: "13/2030", CVC: "123"}, []string{"expiry"}, ReasonExpiry},
		{"two digit year", Card{Number: "1234123412341234", Expiry: "12/30", CVC: "123"}, []string{"expiry"}, ReasonExpiry},
		{"short cvc", Card{Number: "1234123412341234", Expiry: "12/2030", CVC: "12"}, []string{"cvc"}, ReasonCVC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.card)
			assert.False(t, res.OK())
			assert.Len(t, res.Reasons, len(tt.fields))
			for _, f := range tt.fields {
				assert.Equal(t, tt.reason, res.Fields[f])
			}
		})
	}
}

func TestValidate_AggregateListsAllFailures(t *testing.T) {
	res := Validate(Card{Number: "", Expiry: "", CVC: ""})

	assert.Equal(t, []string{ReasonCardNumber, ReasonExpiry, ReasonCVC}, res.Reasons)
	assert.Equal(t,
		"Some payment fields are invalid: "+ReasonCardNumber+", "+ReasonExpiry+", "+ReasonCVC,
		res.Aggregate())
}

func TestNormalizeCardNumber(t *testing.T) {
	assert.Equal(t, "1234123412341234", NormalizeCardNumber("1234-1234-1234-1234"))
	assert.Equal(t, "1234123412341234", NormalizeCardNumber("12341234123412349999"))
	assert.Equal(t, "", NormalizeCardNumber("abc"))
}

func TestFormatExpiry(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1", "1"},
		{"12", "12"},
		{"122", "12/2"},
		{"122030", "12/2030"},
		{"12/2030", "12/2030"},
		{"12203099", "12/2030"},
		{"ab12cd2030", "12/2030"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatExpiry(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeCVC(t *testing.T) {
	assert.Equal(t, "123", NormalizeCVC("12345"))
	assert.Equal(t, "12", NormalizeCVC("1x2"))
}

func TestMaskedValidatesAfterMasking(t *testing.T) {
	// Raw input with separators passes once the masks run.
	card := Card{Number: "1234 1234 1234 1234", Expiry: "122030", CVC: "123"}.Masked()

	assert.True(t, Validate(card).OK())
}

func TestMaskedDetails(t *testing.T) {
	assert.Equal(t, "Card ****1234", MaskedDetails("1234123412341234"))
	assert.Equal(t, "Card ****9876", MaskedDetails("9876"))
	assert.Equal(t, "Card ****12", MaskedDetails("12"))
	assert.Equal(t, "Card", MaskedDetails(""))
	assert.Equal(t, "Card", MaskedDetails("abc"))
}
