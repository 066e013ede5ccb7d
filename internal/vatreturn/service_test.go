// internal/vatreturn/service_test.go
package vatreturn

import (
	"context"
	"errors"
	"testing"

	commonaws "github.com/Nishal72/InnoMinds-Code4Good/internal/common/aws"
	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: awssdk.String("sms-1")}, nil
}

func createTestService(t *testing.T, snsAPI *fakeSNS) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := LoadConfig()
	cipher, err := NewCipher(cfg.AESKey, cfg.AESIV)
	require.NoError(t, err)

	var smsClient *commonaws.SNSClient
	if snsAPI != nil {
		smsClient = commonaws.NewSNSClientWithAPI(snsAPI)
	}

	store := NewStore(db, logger.NewNoOpLogger())
	return NewService(cfg, cipher, store, smsClient, logger.NewNoOpLogger()), mock
}

func testFiling() *FilingInput {
	return &FilingInput{
		BusinessName:    "EcoWorks Ltd",
		BusinessID:      "BRN-12345",
		VATCollected:    1500,
		VATPaid:         900.5,
		ReportingPeriod: "Q2 2026",
		PhoneNumber:     "+23057123456",
	}
}

func expectSave(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery(`INSERT INTO vat_returns`).
		WithArgs("EcoWorks Ltd", "BRN-12345", 1500.0, 900.5, "Q2 2026", "+23057123456", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
}

func TestService_SubmitFiling(t *testing.T) {
	snsAPI := &fakeSNS{}
	service, mock := createTestService(t, snsAPI)
	expectSave(mock, 3)

	receipt, err := service.SubmitFiling(context.Background(), testFiling())
	require.NoError(t, err)

	assert.Equal(t, int64(3), receipt.ReturnID)
	assert.True(t, receipt.SMSSent)
	assert.Equal(t, "sms-1", receipt.SMSID)
	assert.Empty(t, receipt.SMSError)
	assert.Equal(t, "+23057123456", receipt.PhoneNumber)

	// the SMS body is the ciphertext, never the plaintext summary
	require.NotNil(t, snsAPI.input)
	assert.Equal(t, receipt.Encrypted, awssdk.ToString(snsAPI.input.Message))
	assert.Equal(t, "+23057123456", awssdk.ToString(snsAPI.input.PhoneNumber))
	assert.NotContains(t, awssdk.ToString(snsAPI.input.Message), "EcoWorks")

	// the receipt ciphertext decrypts back to the filing summary
	plaintext, err := service.Decrypt(receipt.Encrypted)
	require.NoError(t, err)
	assert.Equal(t,
		"Business Name: EcoWorks Ltd\nBusiness ID: BRN-12345\nVAT Collected: 1500.00\nVAT Paid: 900.50\nReporting Period: Q2 2026",
		plaintext)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SubmitFiling_SMSFailureIsNotFatal(t *testing.T) {
	service, mock := createTestService(t, &fakeSNS{err: errors.New("throttled")})
	expectSave(mock, 4)

	receipt, err := service.SubmitFiling(context.Background(), testFiling())
	require.NoError(t, err)

	assert.Equal(t, int64(4), receipt.ReturnID)
	assert.False(t, receipt.SMSSent)
	assert.Empty(t, receipt.SMSID)
	assert.Contains(t, receipt.SMSError, "throttled")
	assert.NotEmpty(t, receipt.Encrypted)
}

func TestService_SubmitFiling_SMSNotConfigured(t *testing.T) {
	service, mock := createTestService(t, nil)
	expectSave(mock, 5)

	receipt, err := service.SubmitFiling(context.Background(), testFiling())
	require.NoError(t, err)

	assert.False(t, receipt.SMSSent)
	assert.Contains(t, receipt.SMSError, "not configured")
}

func TestService_SubmitFiling_RejectsBadPhone(t *testing.T) {
	service, mock := createTestService(t, nil)

	filing := testFiling()
	filing.PhoneNumber = "not-a-number"

	_, err := service.SubmitFiling(context.Background(), filing)
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SubmitFiling_StoreFailureIsFatal(t *testing.T) {
	snsAPI := &fakeSNS{}
	service, mock := createTestService(t, snsAPI)
	mock.ExpectQuery(`INSERT INTO vat_returns`).WillReturnError(errors.New("connection reset"))

	_, err := service.SubmitFiling(context.Background(), testFiling())
	require.Error(t, err)

	// no SMS goes out for a filing that was never stored
	assert.Nil(t, snsAPI.input)
}

func TestService_SubmitFiling_Deterministic(t *testing.T) {
	service, mock := createTestService(t, nil)
	expectSave(mock, 6)
	expectSave(mock, 7)

	first, err := service.SubmitFiling(context.Background(), testFiling())
	require.NoError(t, err)
	second, err := service.SubmitFiling(context.Background(), testFiling())
	require.NoError(t, err)

	// fixed IV keeps identical filings byte-identical on the wire
	assert.Equal(t, first.Encrypted, second.Encrypted)
}
