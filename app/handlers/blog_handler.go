package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sellaap/go-storefront/app/models"
)

const postsPerPage = 10

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	region := h.regionFor(r, "")

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * postsPerPage

	posts, total, err := h.content.PublishedPosts(r.Context(), postsPerPage, offset)
	if err != nil {
		log.Printf("ListPosts: failed to load posts: %v", err)
	}

	data := h.baseData(r, region)
	data["Posts"] = posts
	data["Page"] = page
	data["TotalPages"] = (total + postsPerPage - 1) / postsPerPage

	h.render.HTML(w, http.StatusOK, "blog/index", data)
}

// PostDetail renders a published post; drafts and archived posts 404
// on the public side.
func (h *Handler) PostDetail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	region := h.regionFor(r, "")

	post, err := h.content.PostBySlug(r.Context(), vars["slug"])
	if err != nil {
		log.Printf("PostDetail: failed to load post %s: %v", vars["slug"], err)
		http.NotFound(w, r)
		return
	}
	if post == nil || post.Status != models.StatusPublished {
		http.NotFound(w, r)
		return
	}

	data := h.baseData(r, region)
	data["Post"] = post
	if post.MetaTitle != "" {
		data["Title"] = post.MetaTitle
	} else {
		data["Title"] = post.Title
	}
	if post.MetaDescription != "" {
		data["SiteDescription"] = post.MetaDescription
	}
	if post.Keywords != "" {
		data["Keywords"] = post.Keywords
	}

	h.render.HTML(w, http.StatusOK, "blog/detail", data)
}
