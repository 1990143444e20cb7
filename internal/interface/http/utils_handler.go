package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ischaojie/soulapi/config"
	"github.com/ischaojie/soulapi/internal/application"
	"github.com/ischaojie/soulapi/internal/interface/middleware"
	"github.com/ischaojie/soulapi/pkg/mailer"
	tpl "github.com/ischaojie/soulapi/pkg/mailer/templates"
	"github.com/ischaojie/soulapi/pkg/response"
)

// UtilsHandler serves the small diagnostic endpoints.
type UtilsHandler struct {
	Pub    application.Publisher
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewUtilsHandler(pub application.Publisher, cfg *config.Config, logger *logrus.Logger) *UtilsHandler {
	return &UtilsHandler{Pub: pub, Cfg: cfg, Logger: logger}
}

// TestToken POST /api/v1/utils/test-token
// Echoes the user resolved from the presented token.
func (h *UtilsHandler) TestToken(c *gin.Context) {
	u := middleware.CurrentUser(c)
	response.Success(c, http.StatusOK, userView(u), "token is valid", nil)
}

type testEmailQuery struct {
	EmailTo string `form:"email_to" binding:"required,email"`
}

// TestEmail POST /api/v1/utils/test-email?email_to= (superuser)
func (h *UtilsHandler) TestEmail(c *gin.Context) {
	var q testEmailQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "email_to must be a valid email", nil)
		return
	}
	if h.Pub == nil || !h.Cfg.MailSendEnabled {
		response.Error[any](c, http.StatusBadRequest, "email sending is disabled", nil)
		return
	}
	job := mailer.EmailJob{
		To:       q.EmailTo,
		Template: tpl.TestEmail,
		Data: map[string]any{
			"ProjectName": h.Cfg.AppName,
			"Email":       q.EmailTo,
		},
	}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil {
		h.Logger.WithError(err).Warn("enqueue test email failed")
		response.Error[any](c, http.StatusInternalServerError, "enqueue failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"msg": "Test email sent"}, "test email enqueued", nil)
}
