package services

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"hotel-server/models"
)

type change struct {
	Before interface{} `json:"before,omitempty"`
	After  interface{} `json:"after,omitempty"`
}

func (s *Service) record(ctx context.Context, tx Store, actor Actor, action, entityType string, entityID uint, before, after interface{}) error {
	details, err := json.Marshal(change{Before: before, After: after})
	if err != nil {
		return err
	}
	return tx.Activity().Record(ctx, &models.ActivityLog{
		UserID:     actor.UserID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    datatypes.JSON(details),
		CreatedAt:  s.now(),
	})
}
