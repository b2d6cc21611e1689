package captcha

import (
	"errors"
	"net/http"
	"recaptchaguard/dto"
	"recaptchaguard/middleware"
	"recaptchaguard/model"
	"recaptchaguard/services"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var validate = validator.New()

func CaptchaController(router *gin.Engine, svc *services.CaptchaService) {
	routes := router.Group("/captcha")
	{
		routes.POST("/verify", func(c *gin.Context) {
			VerifyCaptcha(c, svc)
		})
		routes.POST("/annotate", middleware.AccessTokenMiddleware(), middleware.AdminMiddleware(), func(c *gin.Context) {
			AnnotateCaptcha(c, svc)
		})
		routes.GET("/assessments", middleware.AccessTokenMiddleware(), middleware.AdminMiddleware(), func(c *gin.Context) {
			ListAssessments(c, svc)
		})
	}
}

// remoteStatus maps a failed reCAPTCHA call onto the HTTP status returned to the client.
func remoteStatus(err error) int {
	switch status.Code(err) {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.PermissionDenied, codes.Unauthenticated:
		return http.StatusForbidden
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func VerifyCaptcha(c *gin.Context, svc *services.CaptchaService) {
	var request dto.CaptchaRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseData{Success: false, Message: "Invalid input: " + err.Error()})
		return
	}
	if err := validate.Struct(request); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseData{Success: false, Message: "Invalid input: " + err.Error()})
		return
	}

	data, err := svc.Verify(c.Request.Context(), request.Token, request.Action)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) || errors.Is(err, services.ErrActionMismatch) {
			c.JSON(http.StatusBadRequest, data)
			return
		}
		c.JSON(remoteStatus(err), data)
		return
	}

	c.JSON(http.StatusOK, data)
}

func AnnotateCaptcha(c *gin.Context, svc *services.CaptchaService) {
	var request dto.AnnotateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}
	if err := validate.Struct(request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	err := svc.Annotate(c.Request.Context(), request.AssessmentID, request.Annotation, request.Reasons)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Assessment annotated successfully", "assessmentId": request.AssessmentID})
	case errors.Is(err, services.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
	case errors.Is(err, services.ErrUnknownAnnotation), errors.Is(err, services.ErrUnknownReason):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(remoteStatus(err), gin.H{"error": "Failed to annotate assessment: " + err.Error()})
	}
}

func ListAssessments(c *gin.Context, svc *services.CaptchaService) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	rows, err := svc.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": rows, "count": len(rows)})
}
