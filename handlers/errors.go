package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"visionpay/services/admin"
	"visionpay/services/payment"
	"visionpay/services/signup"
	"visionpay/utils"
)

// respondError writes err as a JSON error. Payment errors carry their own
// status and are checked before the signup taxonomy.
func respondError(c *gin.Context, err error) {
	var pErr *payment.Error
	status := signup.HTTPStatus(err)
	if errors.As(err, &pErr) {
		status = payment.HTTPStatus(err)
	}

	details := ""
	if status >= http.StatusInternalServerError {
		if cause := errors.Unwrap(err); cause != nil {
			details = cause.Error()
		}
	}
	message := err.Error()
	if status == http.StatusInternalServerError {
		details = message
		message = "Something went wrong. Please try again."
	}
	utils.JSONError(c, status, message, details)
}

func respondAdminError(c *gin.Context, err error) {
	status := admin.HTTPStatus(err)
	details := ""
	if cause := errors.Unwrap(err); cause != nil {
		details = cause.Error()
	}
	utils.JSONError(c, status, err.Error(), details)
}
