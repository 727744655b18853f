package handlers

import (
	"net/http"

	"rating_of_titles/internal/service"

	"github.com/gin-gonic/gin"
)

type registerInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (in registerInput) validate() fieldErrors {
	errs := fieldErrors{}
	errs.checkRequired("username", in.Username)
	errs.checkMaxLen("username", in.Username, maxUsernameLen)
	errs.checkRequired("email", in.Email)
	errs.checkMaxLen("email", in.Email, maxEmailLen)
	errs.checkRequired("password", in.Password)
	errs.checkMaxLen("password", in.Password, maxPasswordLen)
	errs.checkMaxLen("role", in.Role, maxRoleLen)
	return errs
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in loginInput) validate() fieldErrors {
	errs := fieldErrors{}
	errs.checkRequired("username", in.Username)
	errs.checkRequired("password", in.Password)
	return errs
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return false
	}
	return true
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   registerInput  true  "Registration payload"
// @Success      200   {object}  map[string]string  "access_token"
// @Failure      400   {object}  map[string]interface{}
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	if errs := input.validate(); !errs.ok() {
		if h.log != nil {
			h.log.Infow("register_invalid_input", "errors", errs)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": errs})
		return
	}

	token, err := h.services.SignUp(c.Request.Context(), service.SignUpParams{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		if h.log != nil {
			h.log.Warnw("register_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   loginInput  true  "Credentials"
// @Success      200   {object}  map[string]string  "access_token"
// @Failure      400   {object}  map[string]interface{}
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	if errs := input.validate(); !errs.ok() {
		c.JSON(http.StatusBadRequest, gin.H{"message": errs})
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Warnw("login_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
