package utils

import (
	"context"
	"errors"
	"log"
	"time"
	"visitrack/src/db"
	"visitrack/src/models"
	"visitrack/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckInVisitor runs the full check-in workflow for a scanned or typed code:
// validate, dedup against the scan log, look up the visitor, then insert the
// scan record and flip the visitor status. Storage operations run strictly in
// that order. The scan insert rides on the unique index over qr_scans.visitor_id,
// and the visitor update is conditional on the status not already being terminal,
// so two concurrent scans of the same code resolve to one winner and one
// already-checked-in result instead of a double check-in.
func CheckInVisitor(ctx context.Context, rawCode string, entryType types.EntryType, deviceInfo *string) (*types.CheckInResult, error) {
	code := NormalizeCode(rawCode)
	if code == "" {
		return nil, types.ErrInvalidCode
	}
	if !IsHexID(code) {
		return nil, types.ErrInvalidCodeFormat
	}

	conn := db.GetDb()

	var existing models.QRScan
	err := conn.WithContext(ctx).
		Where(&models.QRScan{VisitorID: code, Status: types.SCAN_VISITED}).
		First(&existing).
		Error
	if err == nil {
		return &types.CheckInResult{
			AlreadyCheckedIn: true,
			Visitor:          existing.Info(),
			ScanTime:         existing.ScanTime,
			EntryType:        existing.EntryType,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error querying scan log for [%s]: %s\n", code, err.Error())
		return nil, types.ErrLookupFailed.WithCause(err)
	}

	var visitor models.Visitor
	err = conn.WithContext(ctx).
		Where(&models.Visitor{ID: code}).
		First(&visitor).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrVisitorNotFound
		}
		log.Printf("Error retrieving Visitor [%s]: %s\n", code, err.Error())
		return nil, types.ErrLookupFailed.WithCause(err)
	}
	// The dedup read may have raced a concurrent scan that has not committed
	// its log row yet, so the stored status gets a second look.
	if visitor.Status.IsArrived() {
		result := &types.CheckInResult{
			AlreadyCheckedIn: true,
			Visitor:          visitor.Info(),
		}
		if visitor.CheckInTime != nil {
			result.ScanTime = *visitor.CheckInTime
		}
		return result, nil
	}

	now := time.Now()
	scan := models.QRScan{
		VisitorID:  visitor.ID,
		EventID:    visitor.EventID,
		Name:       visitor.Name,
		Company:    visitor.Company,
		EventName:  visitor.EventName,
		ScanTime:   now,
		EntryType:  entryType,
		Status:     types.SCAN_VISITED,
		DeviceInfo: deviceInfo,
	}
	// ON CONFLICT only takes the row when the existing one is a compensated
	// failure; a committed successful scan wins and RowsAffected comes back 0.
	res := conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "visitor_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"scan_time":   now,
				"entry_type":  entryType,
				"status":      types.SCAN_VISITED,
				"error":       nil,
				"device_info": deviceInfo,
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: clause.Column{Table: "qr_scans", Name: "status"}, Value: types.SCAN_FAILED},
			}},
		}).
		Create(&scan)
	if res.Error != nil {
		log.Printf("Error inserting scan record for Visitor [%s]: %s\n", visitor.ID, res.Error.Error())
		return nil, types.ErrScanWriteFailed.WithCause(res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost the insert race; the committed row carries the winning scan.
		if err := conn.WithContext(ctx).
			Where(&models.QRScan{VisitorID: visitor.ID}).
			First(&existing).
			Error; err == nil {
			return &types.CheckInResult{
				AlreadyCheckedIn: true,
				Visitor:          existing.Info(),
				ScanTime:         existing.ScanTime,
				EntryType:        existing.EntryType,
			}, nil
		}
		return &types.CheckInResult{
			AlreadyCheckedIn: true,
			Visitor:          visitor.Info(),
			ScanTime:         now,
		}, nil
	}

	upd := conn.WithContext(ctx).
		Model(&models.Visitor{}).
		Where("id = ? AND status NOT IN ?", visitor.ID, []types.VisitorStatus{types.VISITOR_VISITED, types.VISITOR_CHECKED_IN}).
		Updates(map[string]any{
			"status":        types.VISITOR_VISITED,
			"check_in_time": now,
		})
	if upd.Error != nil {
		log.Printf("Error updating Visitor [%s] after scan insert: %s\n", visitor.ID, upd.Error.Error())
		MarkScanFailed(ctx, visitor.ID, upd.Error.Error())
		return nil, types.ErrVisitorUpdateFailed.WithCause(upd.Error)
	}
	if upd.RowsAffected == 0 {
		// Visitor flipped terminal between the lookup and the update, without a
		// scan row of its own. Ours must not stand as the successful record.
		MarkScanFailed(ctx, visitor.ID, "visitor already checked in")
		result := &types.CheckInResult{
			AlreadyCheckedIn: true,
			Visitor:          visitor.Info(),
			ScanTime:         now,
		}
		return result, nil
	}

	visitor.Status = types.VISITOR_VISITED
	visitor.CheckInTime = &now
	return &types.CheckInResult{
		AlreadyCheckedIn: false,
		Visitor:          visitor.Info(),
		ScanTime:         now,
		EntryType:        entryType,
	}, nil
}

// MarkScanFailed is the compensation step: when the visitor update cannot be
// applied after a scan row was inserted, the row is annotated as failed so the
// partial state is visible and recoverable. Best-effort; failures are logged
// and never override the original error.
func MarkScanFailed(ctx context.Context, visitorID string, cause string) error {
	conn := db.GetDb()
	err := conn.WithContext(ctx).
		Model(&models.QRScan{}).
		Where("visitor_id = ?", visitorID).
		Updates(map[string]any{
			"status": types.SCAN_FAILED,
			"error":  cause,
		}).
		Error
	if err != nil {
		log.Printf("Error marking scan failed for Visitor [%s]: %s\n", visitorID, err.Error())
		return err
	}
	return nil
}
