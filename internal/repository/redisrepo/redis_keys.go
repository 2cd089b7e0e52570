package redisrepo

import "fmt"

const (
	POST_KEY              = "post:%d"      // <postID>
	FEED_PAGE_KEY         = "feed-page:%d" // <page>
	FEED_PAGE_KEY_PATTERN = "feed-page:*"
)

func PostKey(postID int64) string {
	return fmt.Sprintf(POST_KEY, postID)
}

func FeedPageKey(page int) string {
	return fmt.Sprintf(FEED_PAGE_KEY, page)
}
