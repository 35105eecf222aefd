package sns

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/go-shop-auth/internal/domain"
)

type mockEmail struct{ mock.Mock }

func (m *mockEmail) Send(ctx context.Context, msg domain.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

func otpMessage(phone string) domain.Message {
	return domain.Message{To: "s@x.com", Phone: phone, Data: map[string]string{"otp": "4821"}}
}

func TestMirror_SendsSMSCopy(t *testing.T) {
	em, sms := &mockEmail{}, &mockSMS{}
	msg := otpMessage("+15550100")
	em.On("Send", mock.Anything, msg).Return(nil)
	sms.On("SendSMS", mock.Anything, "+15550100", mock.MatchedBy(func(s string) bool {
		return strings.Contains(s, "4821")
	})).Return(nil)

	assert.NoError(t, NewMirror(em, sms).Send(context.Background(), msg))
	sms.AssertExpectations(t)
}

func TestMirror_NoPhoneNoSMS(t *testing.T) {
	em, sms := &mockEmail{}, &mockSMS{}
	msg := otpMessage("")
	em.On("Send", mock.Anything, msg).Return(nil)

	assert.NoError(t, NewMirror(em, sms).Send(context.Background(), msg))
	sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

func TestMirror_EmailFailureSkipsSMS(t *testing.T) {
	em, sms := &mockEmail{}, &mockSMS{}
	msg := otpMessage("+15550100")
	em.On("Send", mock.Anything, msg).Return(errors.New("smtp down"))

	assert.Error(t, NewMirror(em, sms).Send(context.Background(), msg))
	sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

func TestMirror_SMSFailureIgnored(t *testing.T) {
	em, sms := &mockEmail{}, &mockSMS{}
	msg := otpMessage("+15550100")
	em.On("Send", mock.Anything, msg).Return(nil)
	sms.On("SendSMS", mock.Anything, "+15550100", mock.Anything).Return(errors.New("throttled"))

	assert.NoError(t, NewMirror(em, sms).Send(context.Background(), msg))
}
