package http

import (
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxNewsItems = 10

// The feed is scanned as raw text rather than parsed as XML. That keeps the
// extraction lenient: a malformed item is skipped, never an error.
var (
	itemPattern       = regexp.MustCompile(`(?s)<item\b[^>]*>(.*?)</item>`)
	cdataTitlePattern = regexp.MustCompile(`(?s)<title>\s*<!\[CDATA\[(.*?)\]\]>\s*</title>`)
	plainTitlePattern = regexp.MustCompile(`(?s)<title>(.*?)</title>`)
	linkPattern       = regexp.MustCompile(`(?s)<link>(.*?)</link>`)
)

type NewsItemResponse struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Source string `json:"source"`
}

func (h *Handler) getNews(c *gin.Context) {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, h.cfg.NewsFeedURL, nil)
	if err != nil {
		c.String(http.StatusBadGateway, "news upstream unavailable")
		return
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		c.String(http.StatusBadGateway, "news upstream unavailable")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.String(http.StatusBadGateway, "news upstream unavailable")
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.String(http.StatusBadGateway, "news upstream unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": extractNewsItems(string(body), h.cfg.NewsSource, maxNewsItems)})
}

// extractNewsItems pulls up to limit items out of raw RSS text. Titles prefer
// the CDATA form; items missing a title or link are dropped.
func extractNewsItems(feed, source string, limit int) []NewsItemResponse {
	items := make([]NewsItemResponse, 0, limit)

	for _, match := range itemPattern.FindAllStringSubmatch(feed, limit) {
		block := match[1]

		title := ""
		if m := cdataTitlePattern.FindStringSubmatch(block); m != nil {
			title = strings.TrimSpace(m[1])
		} else if m := plainTitlePattern.FindStringSubmatch(block); m != nil {
			title = strings.TrimSpace(m[1])
		}

		link := ""
		if m := linkPattern.FindStringSubmatch(block); m != nil {
			link = strings.TrimSpace(m[1])
		}

		if title == "" || link == "" {
			continue
		}

		items = append(items, NewsItemResponse{
			Title:  title,
			Link:   link,
			Source: source,
		})
	}

	return items
}
