package main

import (
	"errors"
	"log"
	"net/http"
	"time"
	"visitrack/src/db"
	"visitrack/src/models"
	"visitrack/src/types"
	"visitrack/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func qrscanHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/qrscans/check-visitor", func(ctx *gin.Context) {
			visitorId := utils.NormalizeCode(ctx.Query("visitorId"))
			if !utils.IsHexID(visitorId) {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": "visitorId must be a 24-character hex ID"})
				return
			}
			var scan models.QRScan
			db := db.GetDb()
			if err := db.WithContext(ctx.Request.Context()).
				Where(&models.QRScan{VisitorID: visitorId, Status: types.SCAN_VISITED}).
				First(&scan).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusOK, gin.H{"exists": false})
					return
				}
				log.Printf("Error querying scan log for [%s]: %s\n", visitorId, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"exists": true,
				"scan": gin.H{
					"scanTime":  scan.ScanTime.Format(time.RFC3339),
					"name":      scan.Name,
					"company":   scan.Company,
					"eventName": scan.EventName,
					"entryType": scan.EntryType,
				},
			})
		}).
		GET("/qrscans", func(ctx *gin.Context) {
			var scans []models.QRScan
			db := db.GetDb()
			q := db.WithContext(ctx.Request.Context())
			if eventId := ctx.Query("eventId"); eventId != "" {
				if !utils.IsHexID(eventId) {
					ctx.JSON(http.StatusBadRequest, gin.H{"message": "eventId must be a 24-character hex ID"})
					return
				}
				q = q.Where(&models.QRScan{EventID: eventId})
			}
			if err := q.
				Order("scan_time DESC").
				Limit(100).
				Find(&scans).
				Error; err != nil {
				log.Printf("Error retrieving scan log: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": scans})
		}).
		POST("/qrscans", func(ctx *gin.Context) {
			var body types.CreateScanRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			scanTime := time.Now()
			if body.ScanTime != nil {
				parsed, err := time.Parse(time.RFC3339, *body.ScanTime)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"message": "scanTime must be ISO-8601"})
					return
				}
				scanTime = parsed
			}
			entryType := types.EntryType(body.EntryType)
			if entryType == "" {
				entryType = types.ENTRY_QR
			}
			scan := models.QRScan{
				VisitorID:  body.VisitorID,
				EventID:    body.EventID,
				Name:       body.Name,
				Company:    body.Company,
				EventName:  body.EventName,
				ScanTime:   scanTime,
				EntryType:  entryType,
				Status:     types.SCAN_VISITED,
				DeviceInfo: body.DeviceInfo,
			}
			db := db.GetDb()
			res := db.WithContext(ctx.Request.Context()).
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "visitor_id"}},
					DoNothing: true,
				}).
				Create(&scan)
			if res.Error != nil {
				log.Printf("Error inserting scan record for Visitor [%s]: %s\n", body.VisitorID, res.Error.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusConflict, gin.H{"message": "visitor already has a scan record"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": scan})
		}).
		PATCH("/qrscans/:visitorId", func(ctx *gin.Context) {
			var params types.ScanURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			var body types.MarkScanFailedRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			// Compensation is best-effort: a failure here is logged and the
			// caller still gets a 200, per the workflow contract.
			if err := utils.MarkScanFailed(ctx.Request.Context(), params.VisitorID, body.Error); err != nil {
				log.Printf("Compensation failed for Visitor [%s]: %s\n", params.VisitorID, err.Error())
			}
			ctx.Status(http.StatusOK)
		})
	return g
}
