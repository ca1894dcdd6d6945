package apierrors_test

import (
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"synergysphere/internal/apierrors"
	"synergysphere/internal/translator"
)

func TestMain(m *testing.M) {
	translator.Translator = i18n.NewBundle(language.English)
	err := translator.Translator.AddMessages(language.English,
		&i18n.Message{ID: "test_key", Other: "Test message"},
		&i18n.Message{ID: apierrors.MsgValidationFailed, Other: "Validation failed."},
		&i18n.Message{ID: apierrors.MsgTaskTitleRequired, Other: "Task title is required"},
	)
	if err != nil {
		return
	}
	m.Run()
}

func TestCreateError_ReturnsJsonErr(t *testing.T) {
	err := apierrors.CreateError(400, "test_key", "en")
	assert.Equal(t, 400, err.ErrDetails.Code)
	assert.Equal(t, "Test message", err.ErrDetails.Message)
	assert.Nil(t, err.ErrDetails.Fields)
}

func TestGetTransErrorMsg_FallbackToKey(t *testing.T) {
	assert.Equal(t, "unknown_key", apierrors.GetTransErrorMsg("unknown_key", "en"))
}

func TestGetTransErrorMsg_FallbackToEnglish(t *testing.T) {
	assert.Equal(t, "Test message", apierrors.GetTransErrorMsg("test_key", "fr"))
}

func TestValidationError_TranslatesFields(t *testing.T) {
	err := apierrors.ValidationError(400, map[string]string{"title": apierrors.MsgTaskTitleRequired}, "en")
	assert.Equal(t, "Validation failed.", err.ErrDetails.Message)
	assert.Equal(t, map[string]string{"title": "Task title is required"}, err.ErrDetails.Fields)
}

func TestJsonErr_ErrorMethod(t *testing.T) {
	err := apierrors.CreateError(500, "test_key", "en")
	assert.Equal(t, "Code: 500, Message: Test message", err.Error())
}
