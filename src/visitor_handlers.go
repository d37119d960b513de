package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
	"visitrack/src/db"
	"visitrack/src/models"
	"visitrack/src/types"
	"visitrack/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func visitorHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/visitors", func(ctx *gin.Context) {
			var body types.CreateVisitorRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			db := db.GetDb()
			var event models.Event
			if err := db.WithContext(ctx.Request.Context()).
				Where(&models.Event{ID: body.EventID}).
				First(&event).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"message": "event not found"})
					return
				}
				log.Printf("Error retrieving Event [%s]: %s\n", body.EventID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			visitor := models.Visitor{
				ID:             utils.NewID(),
				Name:           body.Name,
				Email:          body.Email,
				Phone:          body.Phone,
				Company:        body.Company,
				EventID:        event.ID,
				EventName:      event.Name,
				EventLocation:  event.Location,
				EventStartDate: event.StartDate,
				EventEndDate:   event.EndDate,
				Status:         types.VISITOR_REGISTERED,
			}
			if err := db.WithContext(ctx.Request.Context()).Create(&visitor).Error; err != nil {
				log.Printf("Error creating Visitor: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"visitor": visitor})
		}).
		GET("/visitors", func(ctx *gin.Context) {
			page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
			if page < 1 {
				page = 1
			}
			limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
			if limit < 1 || limit > 200 {
				limit = 50
			}
			db := db.GetDb()
			q := db.WithContext(ctx.Request.Context())
			if status := ctx.Query("status"); status != "" {
				q = q.Where(&models.Visitor{Status: types.VisitorStatus(status)})
			}
			if eventId := ctx.Query("eventId"); eventId != "" {
				if !utils.IsHexID(eventId) {
					ctx.JSON(http.StatusBadRequest, gin.H{"message": "eventId must be a 24-character hex ID"})
					return
				}
				q = q.Where(&models.Visitor{EventID: eventId})
			}
			var visitors []models.Visitor
			if err := q.
				Order("created_at DESC").
				Offset((page - 1) * limit).
				Limit(limit).
				Find(&visitors).
				Error; err != nil {
				log.Printf("Error retrieving Visitors: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": visitors, "page": page, "limit": limit})
		}).
		GET("/visitors/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			var visitor models.Visitor
			db := db.GetDb()
			if err := db.WithContext(ctx.Request.Context()).
				Where(&models.Visitor{ID: params.ID}).
				First(&visitor).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				log.Printf("Error retrieving Visitor [%s]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"visitor": visitor})
		}).
		POST("/visitors/:id/check-in", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			var body types.VisitorCheckInRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			checkInTime, err := time.Parse(time.RFC3339, body.CheckInTime)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": "checkInTime must be ISO-8601"})
				return
			}
			db := db.GetDb()
			res := db.WithContext(ctx.Request.Context()).
				Model(&models.Visitor{}).
				Where("id = ? AND status NOT IN ?", params.ID, []types.VisitorStatus{types.VISITOR_VISITED, types.VISITOR_CHECKED_IN}).
				Updates(map[string]any{
					"status":        types.VISITOR_VISITED,
					"check_in_time": checkInTime,
				})
			if res.Error != nil {
				log.Printf("Error updating Visitor [%s]: %s\n", params.ID, res.Error.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				var visitor models.Visitor
				if err := db.WithContext(ctx.Request.Context()).
					Where(&models.Visitor{ID: params.ID}).
					First(&visitor).
					Error; err != nil {
					ctx.JSON(http.StatusNotFound, gin.H{"message": "visitor not found"})
					return
				}
				ctx.JSON(http.StatusConflict, gin.H{"message": "visitor already checked in"})
				return
			}
			ctx.Status(http.StatusOK)
		}).
		POST("/visitors/import", func(ctx *gin.Context) {
			file, err := ctx.FormFile("file")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": "missing file upload"})
				return
			}
			f, err := file.Open()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			defer f.Close()

			db := db.GetDb()
			reader := csv.NewReader(f)
			reader.FieldsPerRecord = -1
			records, err := reader.ReadAll()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			var visitors []models.Visitor
			var rowErrors []string
			events := map[string]models.Event{}
			for i, row := range records {
				if i == 0 && len(row) > 0 && row[0] == "name" {
					continue
				}
				// Expected columns: name, email, phone, company, eventId
				if len(row) < 5 || row[0] == "" || row[1] == "" || !utils.IsHexID(row[4]) {
					rowErrors = append(rowErrors, fmt.Sprintf("row %d: invalid record", i+1))
					continue
				}
				event, ok := events[row[4]]
				if !ok {
					if err := db.WithContext(ctx.Request.Context()).
						Where(&models.Event{ID: row[4]}).
						First(&event).
						Error; err != nil {
						rowErrors = append(rowErrors, fmt.Sprintf("row %d: unknown event %s", i+1, row[4]))
						continue
					}
					events[row[4]] = event
				}
				visitors = append(visitors, models.Visitor{
					ID:             utils.NewID(),
					Name:           row[0],
					Email:          row[1],
					Phone:          row[2],
					Company:        row[3],
					EventID:        event.ID,
					EventName:      event.Name,
					EventLocation:  event.Location,
					EventStartDate: event.StartDate,
					EventEndDate:   event.EndDate,
					Status:         types.VISITOR_REGISTERED,
				})
			}
			if len(visitors) > 0 {
				if err := db.WithContext(ctx.Request.Context()).Create(&visitors).Error; err != nil {
					log.Printf("Error importing Visitors: %s\n", err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
					return
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"created": len(visitors), "errors": rowErrors})
		}).
		GET("/visitors/export", func(ctx *gin.Context) {
			db := db.GetDb()
			q := db.WithContext(ctx.Request.Context())
			if eventId := ctx.Query("eventId"); eventId != "" {
				if !utils.IsHexID(eventId) {
					ctx.JSON(http.StatusBadRequest, gin.H{"message": "eventId must be a 24-character hex ID"})
					return
				}
				q = q.Where(&models.Visitor{EventID: eventId})
			}
			var visitors []models.Visitor
			if err := q.Order("created_at ASC").Find(&visitors).Error; err != nil {
				log.Printf("Error exporting Visitors: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			ctx.Header("Content-Type", "text/csv")
			ctx.Header("Content-Disposition", `attachment; filename="visitors.csv"`)
			w := csv.NewWriter(ctx.Writer)
			w.Write([]string{"id", "name", "email", "phone", "company", "event_name", "status", "check_in_time"})
			for _, v := range visitors {
				checkIn := ""
				if v.CheckInTime != nil {
					checkIn = v.CheckInTime.Format(time.RFC3339)
				}
				w.Write([]string{v.ID, v.Name, v.Email, v.Phone, v.Company, v.EventName, string(v.Status), checkIn})
			}
			w.Flush()
		})
	return g
}
