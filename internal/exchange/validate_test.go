package exchange

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acksonp2c/pscbot/internal/orders"
)

func TestLitecoinAddress(t *testing.T) {
	for _, ok := range []string{
		"LVg2kJoFNg45Nbpy53h7Fe1wKyeXVRhMH9",
		"MGxNPPB7eBoWPUaprtX9v9CXJZoD2465zN",
		"ltc1qg82p8d2k6z0f3n3g0d6lrl7k4y2m6wq0c9h5ax",
	} {
		assert.NoError(t, LitecoinAddress(ok), ok)
	}
	for _, bad := range []string{"", "hello", "1BoatSLRHtKNngkdXEeobR76b53LETtpyT", "LVg2kJoFNg45Nbpy53h7Fe1wKyeXVRhMH0", "ltc1short"} {
		err := LitecoinAddress(bad)
		assert.Error(t, err, bad)
		assert.Equal(t, KindValidation, KindOf(err))
	}
}

func TestNonEmpty(t *testing.T) {
	check := NonEmpty("code")
	assert.NoError(t, check("1234 5678 9012 3456"))
	assert.Error(t, check("   "))
	assert.NoError(t, check(strings.Repeat("x", 1000)))
}

func TestWithMaxLength(t *testing.T) {
	v := DefaultValidators(false).WithMaxLength(10)
	assert.NoError(t, v.Code("0123456789"))
	err := v.Code("01234567890")
	assert.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Error(t, v.Address("   "))
	assert.NoError(t, v.Address("äöüäöüäöüä"))

	unchanged := Validators{}.WithMaxLength(0)
	assert.Nil(t, unchanged.Code)

	strict := DefaultValidators(true).WithMaxLength(20)
	assert.Error(t, strict.Address("LVg2kJoFNg45Nbpy53h7Fe1wKyeXVRhMH9"))
}

func TestImageProof(t *testing.T) {
	assert.NoError(t, ImageProof(MediaMessage{Ref: "a", Kind: orders.ProofPhoto}))
	assert.NoError(t, ImageProof(MediaMessage{Ref: "a", Kind: orders.ProofDocument, MIME: "image/png"}))
	assert.Error(t, ImageProof(MediaMessage{Ref: "a", Kind: orders.ProofDocument, MIME: "application/pdf"}))
	assert.Error(t, ImageProof(MediaMessage{Ref: "", Kind: orders.ProofPhoto}))
	assert.Error(t, ImageProof(MediaMessage{Ref: "a", Kind: "video"}))
}

func TestDefaultValidators(t *testing.T) {
	loose := DefaultValidators(false)
	assert.NoError(t, loose.Address("anything"))

	strict := DefaultValidators(true)
	assert.Error(t, strict.Address("anything"))

	filled := Validators{}.withDefaults()
	assert.NotNil(t, filled.Address)
	assert.NotNil(t, filled.Code)
	assert.NotNil(t, filled.Proof)
}
