package backup

import (
	"fmt"
	"strconv"
	"time"

	"vkbackup/pkg/config"
	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/models"
)

// NameFunc returns the destination file name of the photo at 0-based index
type NameFunc func(index int, photo models.PhotoRecord) string

// NameByLikes names a photo by its like count. Equal counts share a name and
// the later upload replaces the earlier one at the destination.
func NameByLikes(_ int, photo models.PhotoRecord) string {
	return strconv.Itoa(photo.Likes) + ".jpg"
}

// NameByLikesAndDate names a photo by like count and UTC upload day
func NameByLikesAndDate(_ int, photo models.PhotoRecord) string {
	day := time.Unix(photo.Date, 0).UTC().Format("2006-01-02")
	return fmt.Sprintf("%d_%s.jpg", photo.Likes, day)
}

// NameByID names a photo by its VK id
func NameByID(_ int, photo models.PhotoRecord) string {
	return strconv.FormatInt(photo.ID, 10) + ".jpg"
}

// NameByIndex names a photo by its 1-based position in the run
func NameByIndex(index int, _ models.PhotoRecord) string {
	return strconv.Itoa(index+1) + ".jpg"
}

// Namer returns the NameFunc for a naming policy
func Namer(policy string) (NameFunc, error) {
	switch policy {
	case "", config.NamingLikes:
		return NameByLikes, nil
	case config.NamingLikesDate:
		return NameByLikesAndDate, nil
	case config.NamingID:
		return NameByID, nil
	case config.NamingIndex:
		return NameByIndex, nil
	default:
		return nil, errs.Config(fmt.Sprintf("unknown naming policy %q", policy), nil)
	}
}
