package models

import "time"

// ChartView is a user's saved chart selection stored in Firestore.
type ChartView struct {
	ViewID    string    `firestore:"viewId" json:"viewId"`
	Name      string    `firestore:"name" json:"name"`
	RegionID  string    `firestore:"regionId" json:"regionId"` // "all" for nationwide
	Metric    string    `firestore:"metric" json:"metric"`     // "positive","negative","death"
	Window    string    `firestore:"window" json:"window"`     // "week","month","max"
	Position  int       `firestore:"position" json:"position"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
