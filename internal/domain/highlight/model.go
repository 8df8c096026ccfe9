package highlight

import (
	"fmt"
	"strings"
	"time"
)

const (
	youtubeWatchMarker = "youtube.com/watch"
	youtubeShortMarker = "youtu.be/"
)

// Highlight is a video clip featuring one player.
type Highlight struct {
	ID              int64
	PlayerID        int64
	Title           string
	Description     string
	VideoURL        string
	ThumbnailURL    string
	DurationSeconds *int
	HighlightDate   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// YouTubeID extracts the video id from watch and youtu.be links.
func YouTubeID(videoURL string) (string, bool) {
	switch {
	case strings.Contains(videoURL, youtubeWatchMarker):
		id := lastSegment(videoURL, "v=")
		if i := strings.Index(id, "&"); i >= 0 {
			id = id[:i]
		}
		return id, true
	case strings.Contains(videoURL, youtubeShortMarker):
		return lastSegment(videoURL, youtubeShortMarker), true
	default:
		return "", false
	}
}

// EmbedURL returns a player-embeddable URL, or the raw URL for other hosts.
func (h Highlight) EmbedURL() string {
	id, ok := YouTubeID(h.VideoURL)
	if !ok {
		return h.VideoURL
	}
	return "https://www.youtube.com/embed/" + id
}

// Thumbnail prefers the YouTube still and falls back to the stored URL.
func (h Highlight) Thumbnail() string {
	id, ok := YouTubeID(h.VideoURL)
	if !ok {
		return h.ThumbnailURL
	}
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}

func (h Highlight) FormattedDate() string {
	return h.CreatedAt.Format("January 02, 2006")
}

func (h Highlight) Validate() error {
	if h.PlayerID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(h.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(h.VideoURL) == "" {
		return fmt.Errorf("video url is required")
	}
	if h.DurationSeconds != nil && *h.DurationSeconds < 0 {
		return fmt.Errorf("duration must be >= 0")
	}

	return nil
}

func lastSegment(s, sep string) string {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s
	}
	return s[i+len(sep):]
}
