package http

import (
	"uxpilot/internal/domain"
	"uxpilot/internal/ports/input"
	"uxpilot/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	media     input.MediaService
	uxtest    input.UXTestService
	scripts   input.ScriptService
	results   input.ResultService
	validator validator.Validator
}

// New func - Creates new HTTP handler
func New(media input.MediaService, uxtest input.UXTestService, scripts input.ScriptService, results input.ResultService) *HTTPHandler {
	return &HTTPHandler{
		media:     media,
		uxtest:    uxtest,
		scripts:   scripts,
		results:   results,
		validator: validator.New(),
	}
}

// HealthCheck func
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// Upload func
/* upload one media file */
// Upload godoc
// @Summary Upload media
// @Description Stores one image under a media id; generates a fresh id when none is given
// @Tags Media
// @Accept multipart/form-data
// @Success 200 {object} UploadResponse
// @Router /upload [post]
// @Produce json
// @param file formData file true "image file (jpeg, jpg, png; max 5MB)"
// @param mediaId formData string false "existing media id"
func (hdl *HTTPHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "No file uploaded."})
	}

	src, err := fileHeader.Open()
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: errorMessage(err)})
	}
	defer src.Close()

	mediaID, err := hdl.media.Upload(domain.UploadRequest{
		MediaID:  c.FormValue("mediaId"),
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		File:     src,
	})
	if err != nil {
		logrus.Errorln(err)
		return c.Status(errorStatusCode(err)).JSON(ErrorResponse{Error: errorMessage(err)})
	}

	return c.Status(fiber.StatusOK).JSON(UploadResponse{MediaID: mediaID})
}

// ListMedia func
/* list image files under one media id */
// ListMedia godoc
// @Summary List media images
// @Description Lists the image filenames stored under a media id
// @Tags Media
// @Success 200 {object} MediaListResponse
// @Router /media/{mediaId} [get]
// @Produce json
// @param mediaId path string true "media id"
func (hdl *HTTPHandler) ListMedia(c *fiber.Ctx) error {
	mediaID := c.Params("mediaId")

	images, err := hdl.media.ListImages(mediaID)
	if err != nil {
		logrus.Errorln(err)
		return c.Status(errorStatusCode(err)).JSON(ErrorResponse{Error: errorMessage(err)})
	}

	return c.Status(fiber.StatusOK).JSON(MediaListResponse{Images: images})
}

// ConductTest func
/* run one scripted ux test */
// ConductTest godoc
// @Summary Conduct UX test
// @Description Drives a simulated participant through the script's questions against the stored images
// @Tags UXTest
// @Accept application/json
// @Success 200 {object} domain.UXTestResult
// @Router /uxtest [post]
// @Produce json
// @param ConductTest body ConductTestRequest true "ConductTest"
func (hdl *HTTPHandler) ConductTest(c *fiber.Ctx) error {
	var request ConductTestRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Script and mediaId are required."})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Script and mediaId are required."})
	}

	// Convert HTTP request to domain request
	domainReq := domain.ConductTestRequest{
		Script:      *request.Script,
		MediaID:     request.MediaID,
		OpenAIKey:   request.OpenAIKey,
		AssistantID: request.AssistantID,
	}
	result, err := hdl.uxtest.ConductTest(c.UserContext(), domainReq)
	if err != nil {
		logrus.Errorf("UX test failed for script=%s media=%s: %v", domainReq.Script.ID, domainReq.MediaID, err)
		return c.Status(errorStatusCode(err)).JSON(ErrorResponse{Error: errorMessage(err)})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// GetScripts func
/* list script library */
// GetScripts godoc
// @Summary List scripts
// @Description Lists the script library
// @Tags Script
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/script [get]
// @Produce json
func (hdl *HTTPHandler) GetScripts(c *fiber.Ctx) error {
	scripts, err := hdl.scripts.ListScripts()
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: scripts})
}

// GetScript func
/* get one script */
// GetScript godoc
// @Summary Get script
// @Description Gets one script by id
// @Tags Script
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/script/{id} [get]
// @Produce json
// @param id path string true "script id"
func (hdl *HTTPHandler) GetScript(c *fiber.Ctx) error {
	script, err := hdl.scripts.GetScript(c.Params("id"))
	if err != nil {
		logrus.Errorln(err)
		if errorStatusCode(err) == fiber.StatusNotFound {
			return c.Status(fiber.StatusNotFound).JSON(ResponseBody{Status: NotFound})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: script})
}

// SaveScript func
/* create or update a script */
// SaveScript godoc
// @Summary Save script
// @Description Creates or updates a script
// @Tags Script
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/script [post]
// @Produce json
// @param SaveScript body ScriptRequest true "SaveScript"
func (hdl *HTTPHandler) SaveScript(c *fiber.Ctx) error {
	var request ScriptRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		msg := ResponseBody{
			Status: BadRequest,
		}
		msg.Status.Message = []string{
			err.Error(),
		}
		return c.Status(fiber.StatusBadRequest).JSON(msg)
	}

	// Convert HTTP request to domain script
	script := domain.Script{
		ID:   request.ID,
		Name: request.Name,
	}
	for _, q := range request.Questions {
		script.Questions = append(script.Questions, domain.Question{
			ID:           q.ID,
			Text:         q.Text,
			UserFollowUp: q.UserFollowUp,
		})
	}

	saved, err := hdl.scripts.SaveScript(script)
	if err != nil {
		logrus.Errorln(err)
		return c.Status(errorStatusCode(err)).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: saved})
}

// DeleteScript func
/* delete a script */
// DeleteScript godoc
// @Summary Delete script
// @Description Deletes one script by id
// @Tags Script
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/script/{id} [delete]
// @Produce json
// @param id path string true "script id"
func (hdl *HTTPHandler) DeleteScript(c *fiber.Ctx) error {
	if err := hdl.scripts.DeleteScript(c.Params("id")); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// GetResults func
/* list completed test results */
// GetResults godoc
// @Summary List results
// @Description Lists completed UX test results
// @Tags Result
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/result [get]
// @Produce json
func (hdl *HTTPHandler) GetResults(c *fiber.Ctx) error {
	results, err := hdl.results.ListResults()
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: results})
}

// GetResult func
/* get one completed test result */
// GetResult godoc
// @Summary Get result
// @Description Gets one completed UX test result by id
// @Tags Result
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/result/{id} [get]
// @Produce json
// @param id path string true "result id"
func (hdl *HTTPHandler) GetResult(c *fiber.Ctx) error {
	result, err := hdl.results.GetResult(c.Params("id"))
	if err != nil {
		logrus.Errorln(err)
		if errorStatusCode(err) == fiber.StatusNotFound {
			return c.Status(fiber.StatusNotFound).JSON(ResponseBody{Status: NotFound})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: result})
}
