package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"pousada/internal/app/commands"
	"pousada/internal/app/dto"
	"pousada/internal/app/handlers/admin"
)

type AdminHandler struct {
	Commands commands.Bus
	Logger   *slog.Logger
}

// SetOverride takes the date from the path; a date in the body is ignored.
func (h AdminHandler) SetOverride(c *gin.Context) {
	date, err := pathDate(c, "date")
	if err != nil {
		badRequest(c, err)
		return
	}
	var body dto.Override
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	body.Date = date
	cmd := admin.SetOverrideCommand{RoomID: c.Param("id"), Override: body}
	h.respondRoom(c, cmd)
}

func (h AdminHandler) ClearOverride(c *gin.Context) {
	date, err := pathDate(c, "date")
	if err != nil {
		badRequest(c, err)
		return
	}
	h.respondRoom(c, admin.ClearOverrideCommand{RoomID: c.Param("id"), Date: date})
}

func (h AdminHandler) ReplaceOverrides(c *gin.Context) {
	var body []dto.Override
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	h.respondRoom(c, admin.ReplaceOverridesCommand{RoomID: c.Param("id"), Overrides: body})
}

func (h AdminHandler) respondRoom(c *gin.Context, cmd commands.Command) {
	res, err := h.Commands.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	room, ok := res.(dto.RoomDetail)
	if !ok {
		writeError(c, h.Logger, commands.ErrResultType)
		return
	}
	c.JSON(http.StatusOK, room)
}

// UpsertDiscount takes the code from the path.
func (h AdminHandler) UpsertDiscount(c *gin.Context) {
	var body dto.Discount
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	body.Code = c.Param("code")
	result, err := commands.Dispatch[admin.UpsertDiscountCommand, dto.Discount](c.Request.Context(), h.Commands, admin.UpsertDiscountCommand{Discount: body})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AdminHandler) DeleteDiscount(c *gin.Context) {
	_, err := commands.Dispatch[admin.DeleteDiscountCommand, struct{}](c.Request.Context(), h.Commands, admin.DeleteDiscountCommand{Code: c.Param("code")})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h AdminHandler) Undo(c *gin.Context) {
	result, err := commands.Dispatch[admin.UndoCommand, dto.HistoryState](c.Request.Context(), h.Commands, admin.UndoCommand{})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AdminHandler) Redo(c *gin.Context) {
	result, err := commands.Dispatch[admin.RedoCommand, dto.HistoryState](c.Request.Context(), h.Commands, admin.RedoCommand{})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AdminHTTP = AdminHandler{}
