package main

import (
	"log"
	"net/http"
	"visitrack/src/types"
	"visitrack/src/utils"

	"github.com/gin-gonic/gin"
)

func checkinHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/checkin", func(ctx *gin.Context) {
			var body types.CheckInRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			entryType := types.EntryType(body.EntryType)
			if entryType == "" {
				entryType = types.ENTRY_QR
			}
			var deviceInfo *string
			if device := ctx.GetString("device_info"); device != "" {
				deviceInfo = &device
			}

			result, err := utils.CheckInVisitor(ctx.Request.Context(), body.Code, entryType, deviceInfo)
			if err != nil {
				ce := types.AsCheckInError(err)
				log.Printf("Check-in failed [%s]: %s\n", ce.Code, ce.Error())
				ctx.JSON(ce.HTTPStatus(), gin.H{"error": ce.Message, "code": ce.Code})
				return
			}
			// A duplicate scan is a warning for the desk staff, not an error;
			// the scanner keeps going either way.
			ctx.JSON(http.StatusOK, result)
		})
	return g
}
