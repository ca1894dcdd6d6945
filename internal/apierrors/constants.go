package apierrors

const (
	MsgInvalidPayload             = "invalidPayload"
	MsgMissingCredentials         = "missingCredentials"
	MsgRegistrationFieldsRequired = "registrationFieldsRequired"
	MsgAuthorizationRequired      = "authorizationRequired"
	MsgInvalidToken               = "invalidToken"
	MsgSessionExpired             = "sessionExpired"
	MsgLoginFailed                = "loginFailed"
	MsgUserNotFound               = "userNotFound"
	MsgProjectNotFound            = "projectNotFound"
	MsgTaskNotFound               = "taskNotFound"
	MsgInvalidStatus              = "invalidStatus"
	MsgInvalidPriority            = "invalidPriority"
	MsgValidationFailed           = "validationFailed"
	MsgStorageWriteFailed         = "storageWriteFailed"
	MsgInternalError              = "internalError"

	MsgTaskTitleRequired          = "taskTitleRequired"
	MsgTaskDescriptionRequired    = "taskDescriptionRequired"
	MsgProjectNameRequired        = "projectNameRequired"
	MsgProjectDescriptionRequired = "projectDescriptionRequired"
)
