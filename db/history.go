package db

import (
	"context"
	"fmt"

	"github.com/amonks/klamu/data"
)

// AddHistory records that the node of the given kind was viewed.
func (db *DB) AddHistory(ctx context.Context, kind string, nodeID int64, title string) error {
	h := data.History{Kind: kind, NodeID: nodeID, Title: title, Created: now()}
	if err := db.WithContext(ctx).Create(&h).Error; err != nil {
		return fmt.Errorf("error adding history for %s %d: %w", kind, nodeID, err)
	}
	return nil
}

// RecentHistory returns the last limit views, newest first.
func (db *DB) RecentHistory(ctx context.Context, limit int) ([]data.History, error) {
	var rows []data.History
	if err := db.WithContext(ctx).
		Order("created desc, id desc").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error getting %d history entries: %w", limit, err)
	}
	return rows, nil
}
