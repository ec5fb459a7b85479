package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func adultDOB() time.Time {
	return testNow.AddDate(-25, 0, 0)
}

func TestSessionHappyPath(t *testing.T) {
	s := NewSession("sess-1", 42)
	assert.Equal(t, StepCustomerType, s.Step)
	assert.False(t, s.Verified())

	require.NoError(t, s.SetCustomerType("indian"))
	assert.Equal(t, StepDocuments, s.Step)

	require.NoError(t, s.AttachDocuments([]string{"https://cdn.example/doc1.jpg"}))
	assert.Equal(t, StepAge, s.Step)

	require.NoError(t, s.VerifyAge(adultDOB(), testNow))
	assert.Equal(t, StepComplete, s.Step)
	assert.True(t, s.Verified())
}

func TestSessionRejectsOutOfOrderActions(t *testing.T) {
	s := NewSession("sess-1", 42)

	assert.ErrorIs(t, s.AttachDocuments([]string{"url"}), ErrWrongStep)
	assert.ErrorIs(t, s.VerifyAge(adultDOB(), testNow), ErrWrongStep)

	require.NoError(t, s.SetCustomerType("indian"))
	assert.ErrorIs(t, s.SetCustomerType("foreign"), ErrWrongStep)
}

func TestSessionInputValidation(t *testing.T) {
	s := NewSession("sess-1", 42)

	assert.ErrorIs(t, s.SetCustomerType(""), ErrNoNationality)
	require.NoError(t, s.SetCustomerType("foreign"))

	assert.ErrorIs(t, s.AttachDocuments(nil), ErrNoDocuments)
}

func TestSessionUnderage(t *testing.T) {
	s := NewSession("sess-1", 42)
	require.NoError(t, s.SetCustomerType("indian"))
	require.NoError(t, s.AttachDocuments([]string{"url"}))

	// 18th birthday is tomorrow
	dob := testNow.AddDate(-18, 0, 1)
	assert.ErrorIs(t, s.VerifyAge(dob, testNow), ErrUnderage)
	assert.Equal(t, StepAge, s.Step)

	// 18th birthday is today
	require.NoError(t, s.VerifyAge(testNow.AddDate(-18, 0, 0), testNow))
	assert.True(t, s.Verified())
}

func TestSessionBack(t *testing.T) {
	s := NewSession("sess-1", 42)

	assert.ErrorIs(t, s.Back(), ErrCannotGoBack)

	require.NoError(t, s.SetCustomerType("indian"))
	require.NoError(t, s.Back())
	assert.Equal(t, StepCustomerType, s.Step)

	require.NoError(t, s.SetCustomerType("indian"))
	require.NoError(t, s.AttachDocuments([]string{"url"}))
	require.NoError(t, s.Back())
	assert.Equal(t, StepDocuments, s.Step)

	// Terminal step cannot be left
	require.NoError(t, s.AttachDocuments([]string{"url"}))
	require.NoError(t, s.VerifyAge(adultDOB(), testNow))
	assert.ErrorIs(t, s.Back(), ErrAlreadyComplete)
}

func TestAge(t *testing.T) {
	assert.Equal(t, 18, Age(testNow.AddDate(-18, 0, 0), testNow))
	assert.Equal(t, 17, Age(testNow.AddDate(-18, 0, 1), testNow))
	assert.Equal(t, 25, Age(testNow.AddDate(-25, 0, 0), testNow))
}
