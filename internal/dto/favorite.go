package dto

// FavoriteStatus tells whether a class is in a device's favorites.
type FavoriteStatus struct {
	ClassID   string `json:"class_id"`
	Favorited bool   `json:"favorited"`
}

// FavoriteList holds the favorited class ids of a device.
type FavoriteList struct {
	ClassIDs []string `json:"class_ids"`
}
