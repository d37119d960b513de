package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"visitrack/src/db"
	"visitrack/src/models"
	"visitrack/src/types"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

func badgeHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/visitors/:id/badge", func(ctx *gin.Context) {
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
			// The badge QR carries the bare visitor ID, the same 24-hex code
			// the scanner feeds back into the check-in flow.
			qrc, err := qrcode.New(visitor.ID)
			if err != nil {
				log.Printf("Error generating badge for Visitor [%s]: %s\n", visitor.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			filepath := path.Join(os.TempDir(), fmt.Sprintf("badge_%s.jpeg", visitor.ID))
			if err := qrc.Save(filepath); err != nil {
				log.Printf("Could not save badge to file [%s]: %s\n", filepath, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			ctx.FileAttachment(filepath, "badge.jpeg")
		})
	return g
}
