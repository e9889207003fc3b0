package models

import "time"

const (
	ItemTypeTheme      = "theme"
	ItemTypeDecoration = "decoration"
	ItemTypePlantSkin  = "plant-skin"
)

func IsValidItemType(itemType string) bool {
	switch itemType {
	case ItemTypeTheme, ItemTypeDecoration, ItemTypePlantSkin:
		return true
	}
	return false
}

// InventoryItem is one purchasable the user owns. (UserID, ItemID) is unique:
// nothing can be bought twice.
type InventoryItem struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"not null;uniqueIndex:uidx_user_item" json:"userId"`
	ItemID     string    `gorm:"not null;uniqueIndex:uidx_user_item" json:"itemId"`
	ItemType   string    `gorm:"not null" json:"itemType"`
	ItemName   string    `gorm:"not null" json:"itemName"`
	Price      int64     `gorm:"not null" json:"price"`
	IsActive   bool      `gorm:"not null;default:false" json:"isActive"`
	AcquiredAt time.Time `gorm:"not null" json:"acquiredAt"`
}
