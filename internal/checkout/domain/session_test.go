package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShipping() ShippingInfo {
	return ShippingInfo{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Address:   "1 Main St",
		City:      "Springfield",
		ZipCode:   "62701",
		Country:   "United States",
	}
}

func validPayment() PaymentInfo {
	return PaymentInfo{
		CardNumber:     "4242 4242 4242 4242",
		ExpiryMonth:    "12",
		ExpiryYear:     "2028",
		CVV:            "123",
		CardholderName: "Jane Doe",
	}
}

func sessionAtReview(t *testing.T) *Session {
	t.Helper()
	s := NewSession("sess-1", "user-1")
	require.NoError(t, s.SetShipping(validShipping()))
	require.NoError(t, s.Next())
	require.NoError(t, s.Next()) // 配送方式有默认值，第 2 步直接通过
	require.NoError(t, s.SetPayment(validPayment()))
	require.NoError(t, s.Next())
	require.Equal(t, StepReview, s.Step)
	return s
}

func TestNewSessionStartsAtShippingInfoStep(t *testing.T) {
	s := NewSession("sess-1", "user-1")

	assert.Equal(t, StepShippingInfo, s.Step)
	assert.Equal(t, StatusActive, s.Status)
	assert.Equal(t, "United States", s.Shipping.Country)
	assert.Equal(t, ShippingMethodStandard, s.ShippingMethod)
	assert.Equal(t, PaymentMethodCard, s.PaymentMethod)
}

func TestNextBlockedByMissingShippingFields(t *testing.T) {
	s := NewSession("sess-1", "user-1")
	info := validShipping()
	info.Address = ""
	info.City = "  "
	require.NoError(t, s.SetShipping(info))

	err := s.Next()

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, StepShippingInfo, validation.Step)
	assert.Contains(t, validation.Fields, "address")
	assert.Contains(t, validation.Fields, "city")
	assert.Equal(t, StepShippingInfo, s.Step)
}

func TestShippingPhoneAndStateAreOptional(t *testing.T) {
	s := NewSession("sess-1", "user-1")
	info := validShipping()
	info.Phone = ""
	info.State = ""
	require.NoError(t, s.SetShipping(info))

	assert.NoError(t, s.Validate(StepShippingInfo))
}

func TestShippingMethodStepPassesWithDefault(t *testing.T) {
	s := NewSession("sess-1", "user-1")
	require.NoError(t, s.SetShipping(validShipping()))
	require.NoError(t, s.Next())

	assert.Equal(t, StepShippingMethod, s.Step)
	assert.NoError(t, s.Next())
	assert.Equal(t, StepPaymentInfo, s.Step)
}

func TestSelectShippingMethod(t *testing.T) {
	s := NewSession("sess-1", "user-1")

	require.NoError(t, s.SelectShippingMethod(ShippingMethodExpress))
	assert.Equal(t, ShippingMethodExpress, s.ShippingMethod)

	assert.ErrorIs(t, s.SelectShippingMethod("overnight"), ErrInvalidShippingMethod)
}

func TestCardPaymentRequiresAllFields(t *testing.T) {
	s := NewSession("sess-1", "user-1")
	payment := validPayment()
	payment.CVV = ""
	payment.CardholderName = " "
	require.NoError(t, s.SetPayment(payment))

	err := s.Validate(StepPaymentInfo)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, StepPaymentInfo, validation.Step)
	assert.Contains(t, validation.Fields, "cvv")
	assert.Contains(t, validation.Fields, "cardholder_name")
}

func TestNonCardPaymentSkipsCardValidation(t *testing.T) {
	s := NewSession("sess-1", "user-1")
	require.NoError(t, s.SelectPaymentMethod("paypal"))

	assert.NoError(t, s.Validate(StepPaymentInfo))
}

func TestCannotAdvancePastReview(t *testing.T) {
	s := sessionAtReview(t)

	assert.ErrorIs(t, s.Next(), ErrNotAdvanceable)
	assert.Equal(t, StepReview, s.Step)
}

func TestPreviousStepsBack(t *testing.T) {
	s := sessionAtReview(t)

	require.NoError(t, s.Previous())
	assert.Equal(t, StepPaymentInfo, s.Step)

	require.NoError(t, s.Previous())
	require.NoError(t, s.Previous())
	require.NoError(t, s.Previous())
	// 首步之前不再后退
	assert.Equal(t, StepShippingInfo, s.Step)
}

func TestBeginSubmitOnlyAtReviewStep(t *testing.T) {
	s := NewSession("sess-1", "user-1")

	assert.ErrorIs(t, s.BeginSubmit(), ErrNotReviewStep)
}

func TestBeginSubmitLocksSession(t *testing.T) {
	s := sessionAtReview(t)

	require.NoError(t, s.BeginSubmit())
	assert.Equal(t, StatusProcessing, s.Status)

	assert.ErrorIs(t, s.BeginSubmit(), ErrSubmissionInFlight)
	assert.ErrorIs(t, s.Next(), ErrSubmissionInFlight)
	assert.ErrorIs(t, s.Previous(), ErrSubmissionInFlight)
	assert.ErrorIs(t, s.SetShipping(validShipping()), ErrSubmissionInFlight)
	assert.ErrorIs(t, s.SelectShippingMethod(ShippingMethodExpress), ErrSubmissionInFlight)
}

func TestCompleteSubmitConfirmsSession(t *testing.T) {
	s := sessionAtReview(t)
	require.NoError(t, s.BeginSubmit())

	s.CompleteSubmit("ORD-1001")

	assert.Equal(t, StatusConfirmed, s.Status)
	assert.Equal(t, "ORD-1001", s.OrderNumber)

	// 终态会话拒绝任何后续变更
	assert.ErrorIs(t, s.BeginSubmit(), ErrSessionClosed)
	assert.ErrorIs(t, s.Next(), ErrSessionClosed)
}

func TestFailSubmitReturnsToReview(t *testing.T) {
	s := sessionAtReview(t)
	require.NoError(t, s.BeginSubmit())

	s.FailSubmit()

	assert.Equal(t, StatusActive, s.Status)
	assert.Equal(t, StepReview, s.Step)
	assert.Empty(t, s.OrderNumber)

	// 失败后可以重新提交
	assert.NoError(t, s.BeginSubmit())
}

func TestMaskedCardNumber(t *testing.T) {
	p := PaymentInfo{CardNumber: "4242 4242 4242 4242"}
	assert.Equal(t, "**** **** **** 4242", p.MaskedCardNumber())

	assert.Equal(t, "****", PaymentInfo{}.MaskedCardNumber())
}

func TestSetShippingDefaultsCountry(t *testing.T) {
	s := NewSession("sess-1", "user-1")
	info := validShipping()
	info.Country = ""
	require.NoError(t, s.SetShipping(info))

	assert.Equal(t, "United States", s.Shipping.Country)
}
