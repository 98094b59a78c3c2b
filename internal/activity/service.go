package activity

import (
	"encoding/json"
	"fmt"

	"konfeksiyon-backend/internal/config"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"
)

type LogOptions struct {
	SKUID       *uint
	UserID      uint
	UserName    string
	Module      string
	Action      models.ActivityAction
	Description string
	OldValues   any
	NewValues   any
}

// Record işlem izini düşer. Çağıran taraf hatayı yutabilir; log
// yazılamaması asıl işlemi geri almaz.
func Record(opts LogOptions) error {
	// jsonb kolonu boş string kabul etmez, default "null" JSON olmalı
	oldStr := "null"
	newStr := "null"

	if opts.OldValues != nil {
		if b, err := json.Marshal(opts.OldValues); err == nil {
			oldStr = string(b)
		}
	}
	if opts.NewValues != nil {
		if b, err := json.Marshal(opts.NewValues); err == nil {
			newStr = string(b)
		}
	}

	entry := models.ActivityLog{
		SKUID:       opts.SKUID,
		Module:      opts.Module,
		Action:      opts.Action,
		Description: opts.Description,
		OldValues:   oldStr,
		NewValues:   newStr,
		UserID:      opts.UserID,
		UserName:    opts.UserName,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		config.Logger().WithError(err).WithField("module", opts.Module).
			Warn("aktivite logu kaydedilemedi")
		return fmt.Errorf("aktivite logu kaydedilemedi: %w", err)
	}

	return nil
}
