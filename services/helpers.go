package services

import (
	"fmt"
	"strings"

	"github.com/Dosada05/pickup-server/models"
	"github.com/Dosada05/pickup-server/storage"
)

func populateProfileDetails(profile *models.Profile, uploader storage.FileUploader) {
	if profile == nil {
		return
	}
	profile.PasswordHash = ""
	if profile.AvatarKey != nil && *profile.AvatarKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*profile.AvatarKey)
		if url != "" {
			profile.AvatarURL = &url
		}
	}
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && strings.HasPrefix(parts[0], "image") && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type %q", contentType)
	}
}
