package handlers

import (
	"net/http"
	"strconv"

	"rating_of_titles/internal/models"
	"rating_of_titles/internal/service"

	"github.com/gin-gonic/gin"
)

const errInvalidTitleID = "invalid title id"

type titleInput struct {
	TitleName   string `json:"title_name"`
	Rating      *int   `json:"rating"`
	TitleType   string `json:"title_type"`
	TitleStatus string `json:"title_status"`
	UserName    string `json:"user_name"`
}

func (in titleInput) validate() fieldErrors {
	errs := fieldErrors{}
	errs.checkRequired("title_name", in.TitleName)
	errs.checkMaxLen("title_name", in.TitleName, maxTitleLen)
	errs.checkRequired("title_type", in.TitleType)
	errs.checkMaxLen("title_type", in.TitleType, maxTitleLen)
	errs.checkRequired("title_status", in.TitleStatus)
	errs.checkMaxLen("title_status", in.TitleStatus, maxTitleLen)
	errs.checkRequired("user_name", in.UserName)
	errs.checkMaxLen("user_name", in.UserName, maxTitleLen)
	return errs
}

// validatePatch bounds only the fields the patch actually carries.
func validatePatch(p models.TitlePatch) fieldErrors {
	errs := fieldErrors{}
	if p.TitleName != nil {
		errs.checkMaxLen("title_name", *p.TitleName, maxTitleLen)
	}
	if p.TitleType != nil {
		errs.checkMaxLen("title_type", *p.TitleType, maxTitleLen)
	}
	if p.TitleStatus != nil {
		errs.checkMaxLen("title_status", *p.TitleStatus, maxTitleLen)
	}
	if p.UserName != nil {
		errs.checkMaxLen("user_name", *p.UserName, maxTitleLen)
	}
	return errs
}

// @Summary      Ratings board
// @Description  Every distinct title name with its type and the average rating across all users.
// @Tags         titles
// @Produce      json
// @Success      200  {array}   models.TitleAggregate
// @Failure      400  {object}  map[string]string
// @Router       / [get]
func (h *Handler) listAllTitles(c *gin.Context) {
	board, err := h.services.ListAll(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Warnw("titles_list_all_failed", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, board)
}

// @Summary      List a user's titles
// @Description  Rows must match both the token identity and the path username.
// @Tags         titles
// @Produce      json
// @Param        username  path   string  true  "Owner username"
// @Success      200  {array}   models.Title
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /{username} [get]
// @Security     BearerAuth
func (h *Handler) listUserTitles(c *gin.Context) {
	titles, err := h.services.ListForUser(c.Request.Context(), userID(c), c.Param("username"))
	if err != nil {
		if h.log != nil {
			h.log.Warnw("titles_list_user_failed", "username", c.Param("username"), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, titles)
}

// @Summary      Add a title
// @Tags         titles
// @Accept       json
// @Produce      json
// @Param        body  body   titleInput  true  "Title payload"
// @Success      200   {object}  models.Title
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]string
// @Router       / [post]
// @Security     BearerAuth
func (h *Handler) createTitle(c *gin.Context) {
	var input titleInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	if errs := input.validate(); !errs.ok() {
		if h.log != nil {
			h.log.Infow("title_invalid_input", "errors", errs)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": errs})
		return
	}

	title, err := h.services.Create(c.Request.Context(), userID(c), service.TitleParams{
		TitleName:   input.TitleName,
		Rating:      input.Rating,
		TitleType:   input.TitleType,
		TitleStatus: input.TitleStatus,
		UserName:    input.UserName,
	})
	if err != nil {
		if h.log != nil {
			h.log.Warnw("title_create_failed", "title_name", input.TitleName, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, title)
}

// @Summary      Update a title
// @Description  Partial update: only the supplied fields are touched.
// @Tags         titles
// @Accept       json
// @Produce      json
// @Param        title_id  path   int         true  "Title ID"
// @Param        body      body   titleInput  true  "Fields to change"
// @Success      200   {object}  models.Title
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]string
// @Router       /{title_id} [put]
// @Security     BearerAuth
func (h *Handler) updateTitle(c *gin.Context) {
	titleID, err := strconv.Atoi(c.Param("title_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidTitleID})
		return
	}

	var patch models.TitlePatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}
	if errs := validatePatch(patch); !errs.ok() {
		c.JSON(http.StatusBadRequest, gin.H{"message": errs})
		return
	}

	title, err := h.services.Update(c.Request.Context(), titleID, userID(c), patch)
	if err != nil {
		if h.log != nil {
			h.log.Warnw("title_update_failed", "title_id", titleID, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, title)
}

// @Summary      Delete a title
// @Tags         titles
// @Produce      json
// @Param        title_id  path   int  true  "Title ID"
// @Success      204   "no content"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /{title_id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTitle(c *gin.Context) {
	titleID, err := strconv.Atoi(c.Param("title_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidTitleID})
		return
	}

	if err := h.services.Delete(c.Request.Context(), titleID, userID(c)); err != nil {
		if h.log != nil {
			h.log.Warnw("title_delete_failed", "title_id", titleID, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
