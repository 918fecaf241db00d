package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"bajarun-backend/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssignmentPersistence is the store collaborator the engine sees; one
// document per night, loaded whole and replaced whole on save.
type AssignmentPersistence interface {
	Load(ctx context.Context, day int) (models.AssignmentStoreMap, error)
	Save(ctx context.Context, day int, store models.AssignmentStoreMap) error
}

// NightAssignmentStore persists the per-night assignment document in MySQL
// and publishes the saved snapshot on redis so concurrently-open admin
// sessions observe it without polling.
type NightAssignmentStore struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewNightAssignmentStore(db *gorm.DB, rdb *redis.Client) *NightAssignmentStore {
	return &NightAssignmentStore{DB: db, Redis: rdb}
}

func assignmentChannel(day int) string {
	return fmt.Sprintf("assignments:night:%d", day)
}

// Load returns the persisted map for the night. A missing row or an
// undecodable document degrades to an empty map; the operator starts from a
// blank grid rather than an error page.
func (s *NightAssignmentStore) Load(ctx context.Context, day int) (models.AssignmentStoreMap, error) {
	var row models.NightAssignments
	err := s.DB.WithContext(ctx).Where("day = ?", day).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AssignmentStoreMap{}, nil
	}
	if err != nil {
		log.Printf("⚠️ load assignments failed for night %d: %v", day, err)
		return models.AssignmentStoreMap{}, nil
	}

	store := models.AssignmentStoreMap{}
	if len(row.Assignments) > 0 {
		if err := json.Unmarshal(row.Assignments, &store); err != nil {
			log.Printf("⚠️ corrupt assignment document for night %d: %v", day, err)
			return models.AssignmentStoreMap{}, nil
		}
	}
	return store, nil
}

// Save replaces the night's document in full. Saving an empty map clears the
// night. The row is upserted so the first save of a night creates it.
func (s *NightAssignmentStore) Save(ctx context.Context, day int, store models.AssignmentStoreMap) error {
	payload, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("encode assignments for night %d: %w", day, err)
	}

	row := models.NightAssignments{Day: day, Assignments: datatypes.JSON(payload)}
	err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"assignments", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save assignments for night %d: %w", day, err)
	}

	if s.Redis != nil {
		if err := s.Redis.Publish(ctx, assignmentChannel(day), payload).Err(); err != nil {
			// The save itself committed; other sessions just miss the push.
			log.Printf("⚠️ publish assignment change for night %d failed: %v", day, err)
		}
	}
	return nil
}

// Subscribe streams replacement snapshots for the night, fed by other
// sessions' saves. The channel closes when ctx is cancelled. Returns nil
// when redis is not configured.
func (s *NightAssignmentStore) Subscribe(ctx context.Context, day int) <-chan models.AssignmentStoreMap {
	if s.Redis == nil {
		return nil
	}

	sub := s.Redis.Subscribe(ctx, assignmentChannel(day))
	out := make(chan models.AssignmentStoreMap)

	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				store := models.AssignmentStoreMap{}
				if err := json.Unmarshal([]byte(msg.Payload), &store); err != nil {
					log.Printf("⚠️ bad assignment push for night %d: %v", day, err)
					continue
				}
				select {
				case out <- store:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
