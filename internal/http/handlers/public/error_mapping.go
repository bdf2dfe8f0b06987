package public

import (
	handlershared "github.com/pianao-store/internal/http/handlers/shared"
	"github.com/pianao-store/internal/http/response"
	"github.com/pianao-store/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []handlershared.MappedError, fallbackCode int, fallbackKey string) {
	handlershared.RespondMappedError(c, err, rules, fallbackCode, fallbackKey)
}

var authErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.invalid_email"},
}

var cartErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidCartItem, Code: response.CodeBadRequest, Key: "error.cart_item_invalid"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductNotAvailable, Code: response.CodeBadRequest, Key: "error.product_invalid"},
	{Target: service.ErrGuestCartID, Code: response.CodeBadRequest, Key: "error.guest_cart_invalid"},
}

var checkoutErrorRules = []handlershared.MappedError{
	{Target: service.ErrTermsNotAccepted, Code: response.CodeBadRequest, Key: "error.checkout_terms_not_accepted"},
	{Target: service.ErrAddressIncomplete, Code: response.CodeBadRequest, Key: "error.checkout_address_incomplete"},
	{Target: service.ErrCheckoutStep, Code: response.CodeBadRequest, Key: "error.checkout_step_invalid"},
	{Target: service.ErrCartEmpty, Code: response.CodeBadRequest, Key: "error.cart_empty"},
	{Target: service.ErrOrderCreateFailed, Code: response.CodeInternal, Key: "error.order_create_failed"},
}

var orderErrorRules = []handlershared.MappedError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
}

var profileErrorRules = []handlershared.MappedError{
	{Target: service.ErrNicknameRequired, Code: response.CodeBadRequest, Key: "error.profile_nickname_required"},
	{Target: service.ErrAddressIncomplete, Code: response.CodeBadRequest, Key: "error.checkout_address_incomplete"},
}

var emailErrorRules = []handlershared.MappedError{
	{Target: service.ErrEmailRequestInvalid, Code: response.CodeBadRequest, Key: "error.email_request_invalid"},
	{Target: service.ErrEmailRecipientRejected, Code: response.CodeBadRequest, Key: "error.email_request_invalid"},
	{Target: service.ErrEmailServiceDisabled, Code: response.CodeInternal, Key: "error.email_not_configured"},
	{Target: service.ErrEmailServiceNotConfigured, Code: response.CodeInternal, Key: "error.email_not_configured"},
}
