package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
	"visitrack/src/config"
	"visitrack/src/db"
	"visitrack/src/lib"
	"visitrack/src/models"
	"visitrack/src/types"
	"visitrack/src/utils"

	"github.com/gin-gonic/gin"
)

type reportSummary struct {
	Registered int64 `json:"registered"`
	Visited    int64 `json:"visited"`
	CheckedOut int64 `json:"checkedOut"`
	Cancelled  int64 `json:"cancelled"`
	ScansToday int64 `json:"scansToday"`
}

func reportHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/reports/summary", func(ctx *gin.Context) {
			eventId := ctx.Query("eventId")
			if eventId != "" && !utils.IsHexID(eventId) {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": "eventId must be a 24-character hex ID"})
				return
			}

			cacheKey := fmt.Sprintf("reports:summary:%s", eventId)
			rd := lib.GetRedisClient()
			if rd != nil {
				if cached, err := rd.Get(context.Background(), cacheKey).Result(); err == nil {
					var summary reportSummary
					if err := json.Unmarshal([]byte(cached), &summary); err == nil {
						ctx.JSON(http.StatusOK, gin.H{"summary": summary, "cached": true})
						return
					}
				}
			}

			conn := db.GetDb()
			countByStatus := func(statuses ...types.VisitorStatus) (int64, error) {
				var count int64
				q := conn.WithContext(ctx.Request.Context()).
					Model(&models.Visitor{}).
					Where("status IN ?", statuses)
				if eventId != "" {
					q = q.Where("event_id = ?", eventId)
				}
				err := q.Count(&count).Error
				return count, err
			}

			var summary reportSummary
			var err error
			if summary.Registered, err = countByStatus(types.VISITOR_REGISTERED); err == nil {
				if summary.Visited, err = countByStatus(types.VISITOR_VISITED, types.VISITOR_CHECKED_IN); err == nil {
					if summary.CheckedOut, err = countByStatus(types.VISITOR_CHECKED_OUT); err == nil {
						summary.Cancelled, err = countByStatus(types.VISITOR_CANCELLED)
					}
				}
			}
			if err != nil {
				log.Printf("Error building report summary: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}

			midnight := time.Now().Truncate(24 * time.Hour)
			scans := conn.WithContext(ctx.Request.Context()).
				Model(&models.QRScan{}).
				Where("status = ?", types.SCAN_VISITED).
				Where("scan_time >= ?", midnight)
			if eventId != "" {
				scans = scans.Where("event_id = ?", eventId)
			}
			if err := scans.Count(&summary.ScansToday).Error; err != nil {
				log.Printf("Error counting today's scans: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}

			if rd != nil {
				if payload, err := json.Marshal(summary); err == nil {
					rd.SetEx(context.Background(), cacheKey, string(payload), config.ReportCacheTTL*time.Second)
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"summary": summary})
		})
	return g
}
