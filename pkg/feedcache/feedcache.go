// Package feedcache patches an already-fetched, paginated feed snapshot in
// place of a refetch. It is a client-side helper: after a successful like
// toggle or tweet creation the caller applies the corresponding patch to its
// in-memory pages and renders the result immediately.
//
// All functions are pure. They never mutate their inputs and return a new
// snapshot whose page boundaries, item order and cursors are unchanged
// (except for the documented prepend to the first page).
package feedcache

import "time"

// User identifies a tweet author inside a cached feed
type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Tweet is a single cached feed entry
type Tweet struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	LikeCount int       `json:"like_count"`
	LikedByMe bool      `json:"liked_by_me"`
	User      User      `json:"user"`
}

// Page is one fetched page of the feed plus the cursor that produced the
// next one. An empty NextCursor marks the last fetched page.
type Page struct {
	Tweets     []Tweet `json:"tweets"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

// Pages is the client-held snapshot of every page fetched so far
type Pages []Page

// ApplyLikeToggle returns a snapshot in which the tweet with the given id
// has its like count moved by one and its liked flag set to added. Tweets
// the viewer has not fetched are left alone; an unknown id yields a
// structurally identical copy.
func ApplyLikeToggle(pages Pages, tweetID uint, added bool) Pages {
	countModifier := -1
	if added {
		countModifier = 1
	}

	out := clonePages(pages)
	for i := range out {
		for j := range out[i].Tweets {
			if out[i].Tweets[j].ID == tweetID {
				out[i].Tweets[j].LikeCount += countModifier
				out[i].Tweets[j].LikedByMe = added
			}
		}
	}
	return out
}

// PrependTweet returns a snapshot with the freshly created tweet at the top
// of the first page, annotated the way a genuine refetch would annotate it:
// zero likes, not liked, owned by the viewer. Later pages and every cursor
// are untouched. An empty snapshot grows a first page.
func PrependTweet(pages Pages, tweet Tweet, viewer User) Pages {
	tweet.LikeCount = 0
	tweet.LikedByMe = false
	tweet.User = viewer

	out := clonePages(pages)
	if len(out) == 0 {
		return Pages{{Tweets: []Tweet{tweet}}}
	}

	first := make([]Tweet, 0, len(out[0].Tweets)+1)
	first = append(first, tweet)
	first = append(first, out[0].Tweets...)
	out[0].Tweets = first
	return out
}

func clonePages(pages Pages) Pages {
	out := make(Pages, len(pages))
	for i, p := range pages {
		tweets := make([]Tweet, len(p.Tweets))
		copy(tweets, p.Tweets)
		out[i] = Page{Tweets: tweets, NextCursor: p.NextCursor}
	}
	return out
}
