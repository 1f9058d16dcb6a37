package access_code

import (
	accessCodeModel "keyless-stay/models/access_code"

	"gorm.io/gorm"
)

// recordEvent writes one audit row for code.
func recordEvent(tx *gorm.DB, code *accessCodeModel.AccessCode, action accessCodeModel.EventAction, details, actor string) error {
	ev := accessCodeModel.AccessCodeEvent{
		AccessCodeID: code.ID,
		BookingID:    code.BookingID,
		PropertyID:   code.PropertyID,
		Code:         code.Code,
		Action:       action,
		Details:      details,
		CreatedBy:    actor,
	}
	return tx.Create(&ev).Error
}
