// Package feed computes the reverse-chronological post listings.
// The store returns posts pre-sorted (created_at DESC, id DESC);
// slicing happens here through the paginator so every listing pages
// the same way.
package feed

import (
	"yatube/models"
	"yatube/pagination"
)

// Global returns one page of all posts. Backs the public index page.
func Global(page, perPage int) (pagination.Page[models.Post], error) {
	posts, err := models.PostsAll()
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	return pagination.Paginate(posts, page, perPage), nil
}

// Grouped returns one page of a single group's posts.
func Grouped(groupID uint64, page, perPage int) (pagination.Page[models.Post], error) {
	posts, err := models.PostsByGroup(groupID)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	return pagination.Paginate(posts, page, perPage), nil
}

// Author returns one page of a single author's posts. Backs profiles.
func Author(authorID uint64, page, perPage int) (pagination.Page[models.Post], error) {
	posts, err := models.PostsByAuthor(authorID)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	return pagination.Paginate(posts, page, perPage), nil
}

// Personal returns one page of posts by the authors the viewer follows.
// A viewer following no one gets an empty page. The viewer's own posts
// never show up here: self-follow edges cannot exist.
func Personal(viewerID uint64, page, perPage int) (pagination.Page[models.Post], error) {
	authorIDs, err := models.FollowedAuthorIDs(viewerID)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	posts, err := models.PostsByAuthorIDs(authorIDs)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	return pagination.Paginate(posts, page, perPage), nil
}
