package web

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/feeds"
	"github.com/pebblenet/pebble/domain"
	"github.com/pebblenet/pebble/util"
)

// GetRSS renders the public post feed, optionally scoped to one author.
func (api *API) GetRSS(username string) (string, error) {

	var posts []domain.Post
	var err error
	var title string
	var createdBy string

	link := fmt.Sprintf("http://%s:%d/feed", api.conf.Conf.Host, api.conf.Conf.HttpPort)

	if username != "" {
		posts, err = api.posts.ByUsername(username)
		if err != nil || len(posts) == 0 {
			log.Println(fmt.Sprintf("Could not get posts from %s!", username), err)
			return "", errors.New("error retrieving posts by username")
		}
		title = fmt.Sprintf("Pebble Posts - %s", username)
		createdBy = username
	} else {
		views, listErr := api.posts.List(0)
		if listErr != nil || len(views) == 0 {
			log.Println("Could not get posts!", listErr)
			return "", errors.New("error retrieving posts")
		}
		for _, view := range views {
			posts = append(posts, view.Post)
		}
		title = "All Pebble Posts"
		createdBy = "everyone"
	}

	if username != "" {
		link = fmt.Sprintf("%s?username=%s", link, username)
	}

	feed := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: link},
		Description: fmt.Sprintf("public post feed - %s", util.GetNameAndVersion()),
		Author:      &feeds.Author{Name: createdBy, Email: fmt.Sprintf("%s@%s", createdBy, api.conf.Conf.Domain)},
		Created:     time.Now(),
	}

	var feedItems []*feeds.Item
	for _, post := range posts {
		email := fmt.Sprintf("%s@%s", post.Author, api.conf.Conf.Domain)
		feedItems = append(feedItems,
			&feeds.Item{
				Id:      post.Id.String(),
				Title:   post.Title,
				Link:    &feeds.Link{Href: fmt.Sprintf("http://%s:%d/posts/%s", api.conf.Conf.Host, api.conf.Conf.HttpPort, post.Id)},
				Content: post.Content,
				Author:  &feeds.Author{Name: post.Author, Email: email},
				Created: post.CreatedAt,
			})
	}

	feed.Items = feedItems
	return feed.ToRss()
}
