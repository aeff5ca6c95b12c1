package public

import (
	handlershared "github.com/shopsync/internal/http/handlers/shared"
	"github.com/shopsync/internal/http/response"
	"github.com/shopsync/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = handlershared.MappedError

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, rules, fallbackCode, fallbackKey)
}

var registerErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
}

var loginErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
}

var productErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidProductQuery, Code: response.CodeBadRequest, Key: "error.product_query_invalid"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
}

var categoryErrorRules = []mappedHandlerError{
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
}

var cartErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.quantity_invalid"},
	{Target: service.ErrCartNotFound, Code: response.CodeNotFound, Key: "error.cart_not_found"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrInsufficientStock, Code: response.CodeUnprocessable, Key: "error.insufficient_stock"},
}
