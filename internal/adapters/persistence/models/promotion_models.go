package models

import (
	"time"
)

// ============================================================
// Promotion (Wheel of Fortune) Tables
// ============================================================

// Wheel schedules: minimum elapsed time between spins
const (
	ScheduleDaily   = "daily"
	ScheduleWeekly  = "weekly"
	ScheduleMonthly = "monthly"
)

// ValidSchedule checks if a schedule string is one of the known schedules
func ValidSchedule(schedule string) bool {
	return schedule == ScheduleDaily || schedule == ScheduleWeekly || schedule == ScheduleMonthly
}

// Segment types
const (
	SegmentWin  = "win"
	SegmentLose = "lose"
)

// PromotionConfigID is the primary key of the singleton config row
const PromotionConfigID uint = 1

// PromotionConfig represents the promotion_configs table.
// A single row (id=1) holds the wheel-of-fortune configuration.
type PromotionConfig struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	IsActive      bool           `gorm:"not null;default:false" json:"is_active"`
	Schedule      string         `gorm:"size:20;not null;default:'daily'" json:"schedule"`
	DeveloperMode bool           `gorm:"not null;default:false" json:"developer_mode"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	Segments      []WheelSegment `gorm:"foreignKey:ConfigID" json:"segments"`
}

func (PromotionConfig) TableName() string {
	return "promotion_configs"
}

// WheelSegment represents one slice of the wheel, in display order
type WheelSegment struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	ConfigID uint   `gorm:"index;not null" json:"-"`
	Position int    `gorm:"not null" json:"position"`
	Text     string `gorm:"size:200;not null" json:"text"`
	Type     string `gorm:"size:10;not null" json:"type"`
}

func (WheelSegment) TableName() string {
	return "wheel_segments"
}

// ============================================================
// Loyalty Tables
// ============================================================

// Stamp event reasons
const (
	StampReasonScan   = "SCAN"
	StampReasonRedeem = "REDEEM"
	StampReasonPrize  = "PRIZE"
	StampReasonWin    = "WIN"
)

// StampEvent represents the stamp_events table: an audit row for every
// loyalty mutation a staff member performs on a customer card.
type StampEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:36;index;not null" json:"user_id"`
	PerformedBy string    `gorm:"size:36;not null" json:"performed_by"`
	Delta       int       `gorm:"not null" json:"delta"`
	Reason      string    `gorm:"size:20;not null" json:"reason"`
	Note        string    `gorm:"size:200" json:"note,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (StampEvent) TableName() string {
	return "stamp_events"
}
